package advisory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig holds configuration for the AI circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // requests allowed in half-open state
	Interval         time.Duration // cyclic period to clear counts while closed (0 = never)
	Timeout          time.Duration // open -> half-open delay
	FailureThreshold uint32        // consecutive failures that trip the breaker
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "gemini",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Breaker wraps gobreaker with logging and a state gauge.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

func NewBreaker(cfg BreakerConfig, m *metrics.Metrics) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "gemini"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: callerGaveUp,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			m.SetBreakerState(name, float64(to))
		},
	}

	m.SetBreakerState(cfg.Name, float64(gobreaker.StateClosed))

	return &Breaker{
		cb:   gobreaker.NewCircuitBreaker(settings),
		name: cfg.Name,
	}
}

// callerGaveUp treats a canceled request as neutral: the caller left, the
// service did not fail. Deadlines still count since they track a slow service.
func callerGaveUp(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// Execute runs fn through the breaker. Rejections wrap ErrCircuitOpen.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Warn().Str("name", b.name).Err(err).Msg("Circuit breaker rejected call")
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, b.name)
	}

	return result, err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// run is Execute with a typed result.
func run[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	out, err := b.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
