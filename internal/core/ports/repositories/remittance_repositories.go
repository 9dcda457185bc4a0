package repositories

import (
	"context"
	"time"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RemittanceReader defines read operations for remittance data
type RemittanceReader interface {
	// FindRemittanceByID retrieves a remittance by its ID.
	FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error)

	// FindRemittanceByReference retrieves a remittance by its reference number.
	FindRemittanceByReference(ctx context.Context, referenceNumber string) (*domain.Remittance, error)

	// ListRemittances retrieves remittances with an optional status filter,
	// newest first, with offset pagination. Returns rows and total count.
	ListRemittances(ctx context.Context, status *domain.RemittanceStatus, page, pageSize int) ([]domain.Remittance, int, error)

	// FindUnreported retrieves remittances created at or after the cutoff with
	// amount_sent >= threshold and reported_to_regulator = false, oldest first,
	// bounded by limit.
	FindUnreported(ctx context.Context, createdAfter time.Time, threshold decimal.Decimal, limit int) ([]domain.Remittance, error)

	// CountStaleUnreported counts reportable-but-unreported remittances created
	// before the cutoff. These are surfaced for manual intervention rather than
	// retried forever.
	CountStaleUnreported(ctx context.Context, createdBefore time.Time, threshold decimal.Decimal) (int, error)

	// FindPendingExemptions retrieves remittances with exemption_status=pending
	// created at or after the cutoff.
	FindPendingExemptions(ctx context.Context, createdAfter time.Time) ([]domain.Remittance, error)
}

// RemittanceWriter defines write operations for remittance data
type RemittanceWriter interface {
	// SaveRemittance persists a newly created remittance.
	SaveRemittance(ctx context.Context, remittance domain.Remittance) error

	// UpdateStatus moves a remittance to the given status. Transition validity
	// is the service's concern; the repository only persists.
	UpdateStatus(ctx context.Context, remittanceID string, status domain.RemittanceStatus, updaterUserID string) error

	// MarkReported performs the atomic conditional update
	// `SET reported_to_regulator=true, report_reference=$ref WHERE
	// remittance_id=$id AND reported_to_regulator=false` and reports whether
	// this caller won the race. A lost race is a no-op, not an error.
	MarkReported(ctx context.Context, remittanceID, reportReference string) (bool, error)

	// RecordReportAttempt increments the attempt counter and stores the attempt
	// timestamp and error text (nil clears the stored error).
	RecordReportAttempt(ctx context.Context, remittanceID string, attemptedAt time.Time, attemptErr *string) error

	// UpdateExemptionStatus conditionally moves the exemption status from the
	// expected current value, recording the approver for decisions. Returns
	// false when the row was not in the expected status (decision already
	// taken elsewhere).
	UpdateExemptionStatus(ctx context.Context, remittanceID string, from, to domain.ExemptionStatus, approver *string) (bool, error)
}

// RemittanceRepositoryFacade combines all remittance-related repository interfaces
type RemittanceRepositoryFacade interface {
	RemittanceReader
	RemittanceWriter
}

// RemittanceRepositoryWithTx extends RemittanceRepositoryFacade with transaction capabilities
type RemittanceRepositoryWithTx interface {
	RemittanceRepositoryFacade
	TransactionManager
}
