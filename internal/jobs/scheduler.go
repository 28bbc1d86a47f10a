package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	JobPurgeResetTokens = "purge-reset-tokens"
	JobPurgeAuditLogs   = "purge-audit-logs"
)

type ResetTokenPurger interface {
	PurgeResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type AuditPurger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type RunObserver interface {
	JobRun(job string, err error)
}

type Options struct {
	Tokens         ResetTokenPurger
	Audit          AuditPurger
	AuditRetention time.Duration
	Location       *time.Location
	Observer       RunObserver
	Logger         *slog.Logger
}

// Scheduler runs the housekeeping jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	opts      Options
	now       func() time.Time
}

func New(opts Options) (*Scheduler, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(opts.Location))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &Scheduler{scheduler: s, opts: opts, now: time.Now}
	if err := js.register(); err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *Scheduler) register() error {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(js.run, JobPurgeResetTokens, js.PurgeResetTokens),
		gocron.WithName(JobPurgeResetTokens),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return fmt.Errorf("register %s: %w", JobPurgeResetTokens, err)
	}

	if _, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(js.run, JobPurgeAuditLogs, js.PurgeAuditLogs),
		gocron.WithName(JobPurgeAuditLogs),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return fmt.Errorf("register %s: %w", JobPurgeAuditLogs, err)
	}

	return nil
}

func (js *Scheduler) Start() {
	js.opts.Logger.Info("job scheduler started", "jobs", len(js.scheduler.Jobs()))
	js.scheduler.Start()
}

func (js *Scheduler) Stop() error {
	return js.scheduler.Shutdown()
}

func (js *Scheduler) JobNames() []string {
	jobs := js.scheduler.Jobs()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name()
	}
	return names
}

func (js *Scheduler) run(name string, fn func(context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := fn(ctx)
	if js.opts.Observer != nil {
		js.opts.Observer.JobRun(name, err)
	}
	if err != nil {
		js.opts.Logger.Error("job failed", "job", name, "error", err)
		return
	}
	js.opts.Logger.Info("job finished", "job", name, "deleted", n)
}

// PurgeResetTokens deletes expired and used password reset tokens.
func (js *Scheduler) PurgeResetTokens(ctx context.Context) (int64, error) {
	if js.opts.Tokens == nil {
		return 0, nil
	}
	return js.opts.Tokens.PurgeResetTokens(ctx, js.now())
}

// PurgeAuditLogs deletes audit rows older than the retention. A zero
// retention keeps everything.
func (js *Scheduler) PurgeAuditLogs(ctx context.Context) (int64, error) {
	if js.opts.Audit == nil || js.opts.AuditRetention <= 0 {
		return 0, nil
	}
	return js.opts.Audit.Purge(ctx, js.now().Add(-js.opts.AuditRetention))
}
