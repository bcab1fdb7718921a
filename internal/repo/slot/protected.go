package slot

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("slot circuit breaker open")

type ProtectedConfig struct {
	Timeout          time.Duration // hard timeout per call
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

const (
	stateClosed   = "closed"
	stateOpen     = "open"
	stateHalfOpen = "half_open"
)

// ProtectedKV puts a per-call timeout and a circuit breaker in front of a
// remote backend so a dead store fails writes fast instead of stalling each
// one for the full timeout.
type ProtectedKV struct {
	inner KV
	cfg   ProtectedConfig
	now   func() time.Time

	mu    sync.Mutex
	state string

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtected(inner KV, cfg ProtectedConfig) *ProtectedKV {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedKV{
		inner: inner,
		cfg:   cfg,
		now:   time.Now,
		state: stateClosed,
	}
}

func (p *ProtectedKV) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := p.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = p.inner.Get(ctx, key)
		return err
	})
	return out, err
}

func (p *ProtectedKV) Put(ctx context.Context, key string, value []byte) error {
	return p.call(ctx, func(ctx context.Context) error {
		return p.inner.Put(ctx, key, value)
	})
}

// Ping reports ErrCircuitOpen while the breaker is open and otherwise asks
// the backend directly. It never moves the breaker.
func (p *ProtectedKV) Ping(ctx context.Context) error {
	p.mu.Lock()
	open := p.state == stateOpen && p.now().Sub(p.openedAt) < p.cfg.Cooldown
	p.mu.Unlock()

	if open {
		return ErrCircuitOpen
	}
	return Ping(ctx, p.inner)
}

// State returns "closed", "open" or "half_open".
func (p *ProtectedKV) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ProtectedKV) call(ctx context.Context, fn func(context.Context) error) error {
	if !p.allowRequest() {
		return ErrCircuitOpen
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	err := fn(callCtx)

	// a missing slot means the backend answered
	if errors.Is(err, ErrNotFound) {
		p.afterRequest(nil)
	} else {
		p.afterRequest(err)
	}
	return err
}

func (p *ProtectedKV) allowRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateOpen:
		if p.now().Sub(p.openedAt) >= p.cfg.Cooldown {
			p.state = stateHalfOpen
			p.halfOpenInFlight = 1
			return true
		}
		return false
	case stateHalfOpen:
		if p.halfOpenInFlight >= p.cfg.HalfOpenMaxCalls {
			return false
		}
		p.halfOpenInFlight++
		return true
	default:
		return true
	}
}

func (p *ProtectedKV) afterRequest(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == stateHalfOpen && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}

	if err == nil {
		p.consecutiveFailures = 0
		p.state = stateClosed
		return
	}

	p.consecutiveFailures++

	// a failed trial reopens immediately
	if p.state == stateHalfOpen || p.consecutiveFailures >= p.cfg.FailureThreshold {
		p.state = stateOpen
		p.openedAt = p.now()
	}
}
