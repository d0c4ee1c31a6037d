package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/forgo/delve/internal/service"
)

// Auditor runs one integrity audit
type Auditor interface {
	Audit(ctx context.Context, repair bool) (*service.AuditResult, error)
}

// IntegrityAuditor periodically audits the catalog's denormalized references
// and optionally repairs what it finds.
type IntegrityAuditor struct {
	auditor  Auditor
	interval time.Duration
	repair   bool
	timeout  time.Duration

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

// IntegrityAuditorConfig holds configuration for the audit job
type IntegrityAuditorConfig struct {
	Auditor  Auditor
	Interval time.Duration // default 1 hour
	Repair   bool
	Timeout  time.Duration // per run, default 5 minutes
}

// NewIntegrityAuditor creates a new integrity audit job
func NewIntegrityAuditor(cfg IntegrityAuditorConfig) *IntegrityAuditor {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &IntegrityAuditor{
		auditor:  cfg.Auditor,
		interval: cfg.Interval,
		repair:   cfg.Repair,
		timeout:  cfg.Timeout,
	}
}

// Start schedules the audit. The first run happens immediately. A run that
// overlaps the next tick delays it instead of running twice.
func (a *IntegrityAuditor) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.scheduler != nil {
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(a.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
			defer cancel()
			_, _ = a.RunOnce(ctx)
		}),
		gocron.WithName("integrity-audit"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("scheduling integrity audit: %w", err)
	}

	sched.Start()
	a.scheduler = sched
	slog.Info("integrity auditor started",
		slog.Duration("interval", a.interval),
		slog.Bool("repair", a.repair),
	)
	return nil
}

// Stop shuts the scheduler down, waiting for a running audit to finish
func (a *IntegrityAuditor) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.scheduler == nil {
		return nil
	}
	err := a.scheduler.Shutdown()
	a.scheduler = nil
	slog.Info("integrity auditor stopped")
	return err
}

// RunOnce performs a single audit with the configured repair setting
func (a *IntegrityAuditor) RunOnce(ctx context.Context) (*service.AuditResult, error) {
	start := time.Now()
	result, err := a.auditor.Audit(ctx, a.repair)
	if err != nil {
		slog.Error("integrity audit failed", slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("integrity audit finished",
		slog.Int("findings", len(result.Findings)),
		slog.Bool("repaired", result.Repaired),
		slog.Duration("took", time.Since(start)),
	)
	return result, nil
}
