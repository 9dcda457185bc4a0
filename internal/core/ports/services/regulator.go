package services

import (
	"context"

	"github.com/remitflow/remit_backend/internal/core/domain"
)

// RegulatorClient is the outbound port to the regulator's submission endpoint.
// Implementations must enforce the configured timeouts and return
// apperrors.ErrTransport (wrapped) for timeouts, connection errors and any
// non-200 response.
type RegulatorClient interface {
	// SubmitReport POSTs a single report and returns the regulator's report_id.
	SubmitReport(ctx context.Context, report *domain.RegulatorReport) (string, error)

	// SubmitBatch POSTs a batch and returns the regulator's
	// reference_number -> report_id map. A missing entry means that item was
	// not accepted; per-item errors, when provided, explain why.
	SubmitBatch(ctx context.Context, batch *domain.RegulatorBatchReport) (map[string]string, map[string]string, error)
}
