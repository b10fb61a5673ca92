package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedify/backend/internal/infrastructure/config"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeUnverified(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestScheduler_RunsPurge(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(&config.SchedulerConfig{PurgeSpec: "@every 1s"}, purger)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return purger.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_PurgeErrorIsLogged(t *testing.T) {
	purger := &countingPurger{err: errors.New("db locked")}
	s := NewScheduler(&config.SchedulerConfig{}, purger)

	s.purgeUnverified()
	assert.Equal(t, int32(1), purger.calls.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&config.SchedulerConfig{PurgeSpec: "not a cron"}, &countingPurger{})
	assert.Error(t, s.Start())
}

func TestScheduler_RequiresPurger(t *testing.T) {
	s := NewScheduler(&config.SchedulerConfig{PurgeSpec: "@every 1h"}, nil)
	assert.Error(t, s.Start())
}
