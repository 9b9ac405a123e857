package reminder

import (
	"context"
	"errors"
	"library-lending/internal/config"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

const (
	defaultInterval = 24 * time.Hour
	defaultTimeout  = 30 * time.Minute
)

type Job interface {
	Run(ctx context.Context) error
}

// Scheduler runs a Job on a fixed interval counted from Start. Overlapping
// runs are skipped.
type Scheduler struct {
	cron       *cron.Cron
	job        Job
	interval   time.Duration
	timeout    time.Duration
	runOnStart bool
	state      atomic.Int32
	ctx        context.Context
	cancel     context.CancelFunc
	firstRun   chan struct{}
	logger     *slog.Logger
}

func NewScheduler(job Job, cfg config.ReminderConfig, logger *slog.Logger) *Scheduler {
	if job == nil || logger == nil {
		panic("scheduler dependencies cannot be nil")
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	schedLogger := logger.With("component", "ReminderScheduler")
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{schedLogger}))),
		job:        job,
		interval:   interval,
		timeout:    timeout,
		runOnStart: cfg.RunOnStart,
		logger:     schedLogger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.ctx != nil {
		return errors.New("scheduler already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.firstRun = make(chan struct{})

	entryID := s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(s.runOnce))
	s.cron.Start()
	s.logger.Info("Reminder scheduler started.", slog.Duration("interval", s.interval), slog.Int("entry_id", int(entryID)))

	if !s.runOnStart {
		close(s.firstRun)
		return nil
	}
	wrapped := s.cron.Entry(entryID).WrappedJob
	go func() {
		defer close(s.firstRun)
		wrapped.Run()
	}()
	return nil
}

// Stop cancels future runs. The returned context is done once any in-flight run returns.
func (s *Scheduler) Stop() context.Context {
	if s.cancel == nil {
		done, cancel := context.WithCancel(context.Background())
		cancel()
		return done
	}
	s.cancel()
	cronCtx := s.cron.Stop()

	done, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		<-cronCtx.Done()
		<-s.firstRun
	}()
	return done
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) runOnce() {
	if err := s.ctx.Err(); err != nil {
		s.logger.Info("Scheduler stopping, skipping reminder run.")
		return
	}
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		s.logger.Warn("Reminder run already in progress, skipping.")
		return
	}
	defer s.state.Store(int32(StateIdle))

	// an in-flight run is bounded by the timeout only, not by Stop.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.timeout)
	defer cancel()

	jobLogger := s.logger.With("job_name", "DueDateReminder")
	jobLogger.Info("Scheduler triggered: running due date reminder sweep.")
	if err := s.job.Run(runCtx); err != nil {
		jobLogger.Error("Due date reminder sweep finished with error", slog.Any("error", err))
		return
	}
	jobLogger.Info("Due date reminder sweep finished successfully.")
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
