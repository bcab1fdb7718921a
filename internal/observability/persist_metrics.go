package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// ObservePersist times one slot operation and classifies its error.
func (p *Prom) ObservePersist(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil {
		status = "error"
		p.PersistErrorsTotal.WithLabelValues(op, classifyPersistErr(err)).Inc()
	}
	p.PersistDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

func classifyPersistErr(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001":
			return "serialization_failure"
		case "40P01":
			return "deadlock"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	if errors.Is(err, slot.ErrCircuitOpen) {
		return "circuit_open"
	}
	if errors.Is(err, redis.ErrClosed) {
		return "connection"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection") || strings.Contains(msg, "refused"):
		return "connection"
	case strings.Contains(msg, "denied") || strings.Contains(msg, "forbidden"):
		return "permission"
	default:
		return "unknown"
	}
}
