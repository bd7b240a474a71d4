// Package pgconv converts between pgtype values and the Go types the domain uses.
package pgconv

import (
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

var ErrInt32Overflow = errors.New("value does not fit an INTEGER column")

func TimestamptzFromTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// TimeFromPgtype returns the zero time for NULL.
func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	if !pt.Valid {
		return time.Time{}
	}
	return pt.Time.UTC()
}

func Int32FromInt(n int) (int32, error) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, ErrInt32Overflow
	}
	return int32(n), nil // #nosec G115 -- range checked above
}
