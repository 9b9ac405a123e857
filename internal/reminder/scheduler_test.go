package reminder

import (
	"context"
	"errors"
	"library-lending/internal/config"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func newFakeJob() *fakeJob {
	return &fakeJob{started: make(chan struct{}, 10)}
}

func (j *fakeJob) Run(ctx context.Context) error {
	j.calls.Add(1)
	j.started <- struct{}{}
	if j.release != nil {
		<-j.release
	}
	return j.err
}

func waitStarted(t *testing.T, j *fakeJob) {
	t.Helper()
	select {
	case <-j.started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerRunsOnStart(t *testing.T) {
	job := newFakeJob()
	job.err = errors.New("sweep failed")
	s := NewScheduler(job, config.ReminderConfig{Interval: time.Hour, RunOnStart: true}, logger)

	require.NoError(t, s.Start(context.Background()))
	waitStarted(t, job)
	waitDone(t, s.Stop())

	assert.Equal(t, int32(1), job.calls.Load())
	assert.Equal(t, StateIdle, s.State())
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	job := newFakeJob()
	s := NewScheduler(job, config.ReminderConfig{Interval: time.Second}, logger)

	require.NoError(t, s.Start(context.Background()))
	waitStarted(t, job)
	waitDone(t, s.Stop())

	assert.GreaterOrEqual(t, job.calls.Load(), int32(1))
}

func TestSchedulerStopWaitsForInFlightRun(t *testing.T) {
	job := newFakeJob()
	job.release = make(chan struct{})
	s := NewScheduler(job, config.ReminderConfig{Interval: time.Hour, RunOnStart: true}, logger)

	require.NoError(t, s.Start(context.Background()))
	waitStarted(t, job)
	assert.Equal(t, StateRunning, s.State())

	stopped := s.Stop()
	select {
	case <-stopped.Done():
		t.Fatal("stop returned before the run finished")
	case <-time.After(100 * time.Millisecond):
	}

	close(job.release)
	waitDone(t, stopped)
	assert.Equal(t, StateIdle, s.State())
}

func TestSchedulerSkipsRunWhenCancelled(t *testing.T) {
	job := newFakeJob()
	s := NewScheduler(job, config.ReminderConfig{Interval: time.Hour, RunOnStart: true}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Start(ctx))
	waitDone(t, s.Stop())
	assert.Equal(t, int32(0), job.calls.Load())
}

func TestSchedulerStartTwice(t *testing.T) {
	s := NewScheduler(newFakeJob(), config.ReminderConfig{}, logger)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Error(t, s.Start(context.Background()))
	assert.Equal(t, defaultInterval, s.interval)
	assert.Equal(t, defaultTimeout, s.timeout)
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(newFakeJob(), config.ReminderConfig{}, logger)
	waitDone(t, s.Stop())
}
