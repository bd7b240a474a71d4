package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	LedgerBackendMemory   = "memory"
	LedgerBackendSQLite   = "sqlite"
	LedgerBackendPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Ledger  LedgerConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Email   EmailConfig
	Retry   RetryConfig
	Clients ClientsConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type LedgerConfig struct {
	Backend    string `envconfig:"LEDGER_BACKEND" default:"postgres"`
	SQLitePath string `envconfig:"LEDGER_SQLITE_PATH" default:"ledger.db"`
}

// Empty Addr selects the in-process idempotency store.
type RedisConfig struct {
	Addr           string        `envconfig:"REDIS_ADDR"`
	Password       string        `envconfig:"REDIS_PASSWORD"`
	DB             int           `envconfig:"REDIS_DB" default:"0"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// Empty Brokers disables event publishing.
type KafkaConfig struct {
	Brokers    []string `envconfig:"KAFKA_BROKERS"`
	Topic      string   `envconfig:"KAFKA_LEDGER_TOPIC" default:"course.ledger.events"`
	BufferSize int      `envconfig:"KAFKA_BUFFER_SIZE" default:"256"`
}

type EmailConfig struct {
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	From         string `envconfig:"EMAIL_FROM" default:"no-reply@courses.local"`
}

type RetryConfig struct {
	InitialInterval time.Duration `envconfig:"RELEASE_RETRY_INITIAL" default:"100ms"`
	MaxInterval     time.Duration `envconfig:"RELEASE_RETRY_MAX_INTERVAL" default:"2s"`
	MaxRetries      uint64        `envconfig:"RELEASE_RETRY_MAX" default:"5"`
}

type ClientsConfig struct {
	Timeout          time.Duration `envconfig:"CLIENT_TIMEOUT" default:"5s"`
	AuthURL          string        `envconfig:"AUTH_SERVICE_URL" default:"http://localhost:3001"`
	CoursesURL       string        `envconfig:"COURSES_SERVICE_URL" default:"http://localhost:3002"`
	NotificationsURL string        `envconfig:"NOTIFICATIONS_SERVICE_URL" default:"http://localhost:3005"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.Ledger.Backend {
	case LedgerBackendMemory, LedgerBackendSQLite:
		return nil
	case LedgerBackendPostgres:
		if c.DB.User == "" || c.DB.Password == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required for the postgres ledger backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.Ledger.Backend)
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Ledger: LedgerConfig{
			Backend: LedgerBackendMemory,
		},
		Redis: RedisConfig{
			IdempotencyTTL: time.Hour,
		},
		Kafka: KafkaConfig{
			Topic:      "course.ledger.events",
			BufferSize: 16,
		},
		Retry: RetryConfig{
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			MaxRetries:      3,
		},
		Clients: ClientsConfig{
			Timeout: 2 * time.Second,
		},
	}
}
