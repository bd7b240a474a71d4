package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/tracing"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

type eventMessage struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CourseID   string    `json:"course_id"`
	Slots      int       `json:"slots"`
	Enrolled   int       `json:"enrolled"`
	Capacity   int       `json:"capacity"`
	Available  int       `json:"available_slots"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type pending struct {
	headers []kafka.Header
	event   course.LedgerEvent
}

// Publisher hands ledger events to kafka from a background goroutine. Publish
// never blocks a reservation: when the buffer is full the event is dropped and
// logged.
type Publisher struct {
	log      *slog.Logger
	producer Producer
	queue    chan pending

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewPublisher(log *slog.Logger, producer Producer, bufferSize int) *Publisher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Publisher{
		log:      log,
		producer: producer,
		queue:    make(chan pending, bufferSize),
		done:     make(chan struct{}),
	}
}

func (p *Publisher) Start() {
	go p.run()
}

func (p *Publisher) Publish(ctx context.Context, event course.LedgerEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.log.Warn("ledger event dropped after shutdown", "event_id", event.ID.String(), "type", string(event.Type))
		return
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte(event.Type)}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	select {
	case p.queue <- pending{headers: headers, event: event}:
	default:
		p.log.Warn("ledger event buffer full, dropping event",
			"event_id", event.ID.String(),
			"type", string(event.Type),
			"course_id", event.CourseID)
	}
}

// Stop drains queued events until ctx ends.
func (p *Publisher) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for item := range p.queue {
		p.dispatch(item)
	}
}

func (p *Publisher) dispatch(item pending) {
	ev := item.event
	payload, err := json.Marshal(eventMessage{
		ID:         ev.ID.String(),
		Type:       string(ev.Type),
		CourseID:   ev.CourseID,
		Slots:      ev.Slots,
		Enrolled:   ev.Enrolled,
		Capacity:   ev.Capacity,
		Available:  ev.Capacity - ev.Enrolled,
		Status:     ev.Status.String(),
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		p.log.Error("ledger event encode failed", "event_id", ev.ID.String(), "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:     []byte(ev.CourseID),
		Value:   payload,
		Headers: item.headers,
	}
	if err := p.producer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("ledger event dispatch failed", "event_id", ev.ID.String(), "type", string(ev.Type), "err", err)
		return
	}
	p.log.Debug("ledger event dispatched", "event_id", ev.ID.String(), "type", string(ev.Type))
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, course.LedgerEvent) {}
