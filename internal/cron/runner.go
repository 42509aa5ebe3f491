// Package cronrunner runs named background jobs on robfig/cron with a shared
// base context. A panicking job is logged and does not stop the scheduler.
package cronrunner

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add schedules job under name. Specs accept an optional seconds field and
// descriptors such as "@every 15m".
func (r *Runner) Add(name, spec string, job func(context.Context)) (cron.EntryID, error) {
	id, err := r.cron.AddFunc(spec, func() { r.run(name, job) })
	if err != nil {
		return 0, fmt.Errorf("cron job %s: %w", name, err)
	}
	if r.logger != nil {
		r.logger.Info("cron job registered", zap.String("job", name), zap.String("spec", spec))
	}
	return id, nil
}

func (r *Runner) run(name string, job func(context.Context)) {
	if r.baseCtx.Err() != nil {
		return
	}
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil && r.logger != nil {
			r.logger.Error("cron job panicked", zap.String("job", name), zap.Any("panic", rec))
		}
	}()
	job(r.baseCtx)
	if r.logger != nil {
		r.logger.Debug("cron job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

// Entries reports how many jobs are scheduled.
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

func (r *Runner) Start() {
	if r.logger != nil {
		r.logger.Info("cron started")
	}
	r.cron.Start()
}

// Stop waits for running jobs to return.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	if r.logger != nil {
		r.logger.Info("cron stopped")
	}
}
