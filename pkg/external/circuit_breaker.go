package external

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/screening-recommender/internal/domain"
)

// SourceBreakers holds one circuit breaker per assessment source so a
// failing sheet does not trip the others. A disabled set executes calls
// directly.
type SourceBreakers struct {
	breakers map[domain.Source]*gobreaker.CircuitBreaker
}

// NewSourceBreakers creates breakers for every pipeline source
func NewSourceBreakers(cfg domain.CircuitBreakerConfig, logger *logrus.Logger) *SourceBreakers {
	sb := &SourceBreakers{breakers: make(map[domain.Source]*gobreaker.CircuitBreaker)}
	if !cfg.Enabled {
		return sb
	}

	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 3
	}
	failureRatio := cfg.FailureRatio
	if failureRatio <= 0 {
		failureRatio = 0.6
	}

	for _, source := range domain.PipelineOrder {
		sb.breakers[source] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        source.String(),
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			IsSuccessful: func(err error) bool {
				var aborted *callerAbortedError
				return err == nil || errors.As(err, &aborted)
			},
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= minRequests && ratio >= failureRatio
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"source": name,
					"from":   from.String(),
					"to":     to.String(),
				}).Warn("Circuit breaker state changed")
			},
		})
	}
	return sb
}

// callerAbortedError marks a failure caused by the caller's context ending.
// It says nothing about the source, so the breaker does not count it.
type callerAbortedError struct {
	err error
}

func (e *callerAbortedError) Error() string { return e.err.Error() }
func (e *callerAbortedError) Unwrap() error { return e.err }

// Execute runs fn under the source's breaker. Failures that happen after
// ctx is done are not held against the source.
func (s *SourceBreakers) Execute(ctx context.Context, source domain.Source, fn func() (interface{}, error)) (interface{}, error) {
	cb, ok := s.breakers[source]
	if !ok {
		return fn()
	}
	out, err := cb.Execute(func() (interface{}, error) {
		out, err := fn()
		if err != nil && ctx.Err() != nil {
			return nil, &callerAbortedError{err: err}
		}
		return out, err
	})
	var aborted *callerAbortedError
	if errors.As(err, &aborted) {
		return nil, aborted.err
	}
	return out, err
}

// States returns each source's breaker state. Disabled breakers report
// "disabled".
func (s *SourceBreakers) States() map[string]string {
	states := make(map[string]string, len(domain.PipelineOrder))
	for _, source := range domain.PipelineOrder {
		if cb, ok := s.breakers[source]; ok {
			states[source.String()] = cb.State().String()
		} else {
			states[source.String()] = "disabled"
		}
	}
	return states
}
