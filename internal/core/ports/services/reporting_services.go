package services

import (
	"context"

	"github.com/remitflow/remit_backend/internal/core/domain"
)

// ReportBuilderSvc assembles canonical regulator payloads. Pure mapping; never
// mutates the remittance.
type ReportBuilderSvc interface {
	// BuildReportPayload maps a remittance into the regulator's fixed schema.
	// Returns apperrors.ErrIncompleteData naming every missing required field.
	BuildReportPayload(remittance *domain.Remittance) (*domain.RegulatorReport, error)

	// BuildBatchPayload wraps per-transaction reports into a batch submission.
	BuildBatchPayload(remittances []*domain.Remittance) (*domain.RegulatorBatchReport, error)
}

// ReportingSvc is the dispatcher: it delivers reports to the regulator with
// idempotent at-least-once semantics and reconciles the unreported backlog.
type ReportingSvc interface {
	// ReportRemittance dispatches a single remittance. Short-circuit paths
	// (reporting disabled, already reported, below threshold) are returned as
	// Skipped outcomes before any payload is built or network call made.
	ReportRemittance(ctx context.Context, remittanceID string) (domain.ReportOutcome, error)

	// ReportBatch dispatches the given remittances in one submission, marking
	// exactly the reference numbers confirmed by the regulator. Partial
	// success is handled per item.
	ReportBatch(ctx context.Context, remittances []domain.Remittance) (domain.ReconciliationSummary, error)

	// ReconcileUnreported re-scans the trailing window for reportable
	// remittances that were never confirmed and re-attempts delivery. Stale
	// rows older than the window are counted and surfaced, not retried.
	ReconcileUnreported(ctx context.Context) (domain.ReconciliationSummary, error)

	// UnreportedBacklog lists the currently eligible unreported remittances
	// plus the stale count, for operator visibility.
	UnreportedBacklog(ctx context.Context) ([]domain.Remittance, int, error)
}
