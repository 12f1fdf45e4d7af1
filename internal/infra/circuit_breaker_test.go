package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTPDown = errors.New("dial tcp: connection refused")

func trippedBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cb := NewCircuitBreaker(cfg)
	for i := 0; i < cfg.FailureThreshold; i++ {
		_ = cb.Execute(func() error { return errSMTPDown })
	}
	return cb
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cfg := CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 2, OpenTimeout: time.Minute}
	cb := NewCircuitBreaker(cfg)
	assert.Equal(t, CBClosed, cb.State())

	for i := 0; i < 2; i++ {
		err := cb.Execute(func() error { return errSMTPDown })
		assert.ErrorIs(t, err, errSMTPDown)
		assert.Equal(t, CBClosed, cb.State())
	}

	err := cb.Execute(func() error { return errSMTPDown })
	assert.ErrorIs(t, err, errSMTPDown)
	assert.Equal(t, CBOpen, cb.State())

	// While open, calls fast-fail without invoking fn.
	called := false
	err = cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cfg := CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 2, OpenTimeout: time.Minute}
	cb := NewCircuitBreaker(cfg)

	// Two failures, then a success: the streak restarts.
	_ = cb.Execute(func() error { return errSMTPDown })
	_ = cb.Execute(func() error { return errSMTPDown })
	require.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return errSMTPDown })
	_ = cb.Execute(func() error { return errSMTPDown })

	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cfg := CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 2, OpenTimeout: 20 * time.Millisecond}
	cb := trippedBreaker(cfg)
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	cfg := CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 2, OpenTimeout: 20 * time.Millisecond}
	cb := trippedBreaker(cfg)

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	err := cb.Execute(func() error { return errSMTPDown })
	assert.ErrorIs(t, err, errSMTPDown)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
