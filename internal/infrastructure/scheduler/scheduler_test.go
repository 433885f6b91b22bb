package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	grace atomic.Int64
	err   error
}

func (s *countingSweeper) SweepOrphanFiles(ctx context.Context, grace time.Duration) (int, error) {
	s.calls.Add(1)
	s.grace.Store(int64(grace))
	return 1, s.err
}

func TestStartOrphanSweeper_RunsJob(t *testing.T) {
	sweeper := &countingSweeper{}

	s, err := StartOrphanSweeper(sweeper, 50*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, s)
	defer s.Shutdown()

	assert.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(50*time.Millisecond), sweeper.grace.Load())
}

func TestStartOrphanSweeper_SurvivesFailures(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("disk unavailable")}

	s, err := StartOrphanSweeper(sweeper, 20*time.Millisecond)
	require.NoError(t, err)
	defer s.Shutdown()

	assert.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartOrphanSweeper_Disabled(t *testing.T) {
	s, err := StartOrphanSweeper(&countingSweeper{}, 0)
	require.NoError(t, err)
	assert.Nil(t, s)
}
