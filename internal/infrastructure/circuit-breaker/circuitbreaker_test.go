package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := CreateCircuitBreaker[struct{}]("test", time.Minute)
	failure := errors.New("broker down")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (struct{}, error) { return struct{}{}, failure })
		assert.ErrorIs(t, err, failure)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	called := false
	_, err := cb.Execute(func() (struct{}, error) {
		called = true
		return struct{}{}, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}

func TestCreateCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb := CreateCircuitBreaker[struct{}]("test", time.Minute)

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (struct{}, error) { return struct{}{}, nil })
		assert.NoError(t, err)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
