// Package jobs hosts the periodic background work: report reconciliation and
// the pending-exemption policy sweep. Both loops are independent tickers so a
// slow reconciliation pass never delays exemption review.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/middleware"
	"github.com/remitflow/remit_backend/internal/platform/config"
)

// Runner owns the background loops. Start launches them; Stop cancels and
// waits for in-flight passes to finish.
type Runner struct {
	services *portssvc.ServiceContainer
	logger   *slog.Logger

	reconciliationInterval  time.Duration
	exemptionReviewInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a job runner from the typed config.
func NewRunner(cfg *config.Config, services *portssvc.ServiceContainer, logger *slog.Logger) *Runner {
	return &Runner{
		services:                services,
		logger:                  logger.With("component", "jobs"),
		reconciliationInterval:  cfg.ReconciliationInterval,
		exemptionReviewInterval: cfg.ExemptionReviewInterval,
	}
}

// Start launches the background loops. Each loop runs one pass immediately so
// a restart drains any backlog without waiting a full interval.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = middleware.ContextWithLogger(ctx, r.logger)
	r.cancel = cancel

	r.wg.Add(2)
	go r.loop(ctx, "reconciliation", r.reconciliationInterval, r.runReconciliation)
	go r.loop(ctx, "exemption_review", r.exemptionReviewInterval, r.runExemptionReview)

	r.logger.Info("Background jobs started",
		"reconciliation_interval", r.reconciliationInterval.String(),
		"exemption_review_interval", r.exemptionReviewInterval.String())
}

// Stop cancels the loops and blocks until they exit.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.wg.Wait()
	r.logger.Info("Background jobs stopped")
}

func (r *Runner) loop(ctx context.Context, name string, interval time.Duration, pass func(context.Context)) {
	defer r.wg.Done()

	pass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Background loop exiting", "job", name)
			return
		case <-ticker.C:
			pass(ctx)
		}
	}
}

func (r *Runner) runReconciliation(ctx context.Context) {
	summary, err := r.services.Reporting.ReconcileUnreported(ctx)
	if err != nil {
		r.logger.Error("Reconciliation pass failed", "error", err.Error())
		return
	}
	if summary.Scanned > 0 || summary.StaleBacklog > 0 {
		r.logger.Info("Reconciliation pass completed",
			"scanned", summary.Scanned,
			"reported", summary.Reported,
			"still_pending", summary.StillPending,
			"stale_backlog", summary.StaleBacklog)
	}
}

func (r *Runner) runExemptionReview(ctx context.Context) {
	decided, err := r.services.Exemption.ProcessPendingExemptions(ctx)
	if err != nil {
		r.logger.Error("Exemption review pass failed", "error", err.Error())
		return
	}
	if decided > 0 {
		r.logger.Info("Exemption review pass completed", "decided", decided)
	}
}
