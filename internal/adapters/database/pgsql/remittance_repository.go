package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	"github.com/remitflow/remit_backend/internal/models"
	"github.com/remitflow/remit_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const remittanceColumns = `
	remittance_id, reference_number,
	sender_user_id, sender_name, sender_country, sender_identification, sender_risk_category,
	recipient_name, recipient_phone, recipient_country,
	amount_sent, amount_received, currency_sent, currency_received, exchange_rate, fee, purpose,
	status, exemption_status, exemption_approver,
	source_of_funds_verified, recipient_verified,
	reported_to_regulator, report_reference, report_attempts, last_report_attempt_at, last_report_error,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxRemittanceRepository implements the remittance repository ports using pgxpool.
type PgxRemittanceRepository struct {
	baseRepository
}

// NewPgxRemittanceRepository creates a new PgxRemittanceRepository.
func NewPgxRemittanceRepository(pool *pgxpool.Pool) *PgxRemittanceRepository {
	return &PgxRemittanceRepository{baseRepository{pool: pool}}
}

var _ portsrepo.RemittanceRepositoryWithTx = (*PgxRemittanceRepository)(nil)

func scanRemittance(row pgx.Row) (*models.Remittance, error) {
	var m models.Remittance
	err := row.Scan(
		&m.RemittanceID, &m.ReferenceNumber,
		&m.SenderUserID, &m.SenderName, &m.SenderCountry, &m.SenderIdentification, &m.SenderRiskCategory,
		&m.RecipientName, &m.RecipientPhone, &m.RecipientCountry,
		&m.AmountSent, &m.AmountReceived, &m.CurrencySent, &m.CurrencyReceived, &m.ExchangeRate, &m.Fee, &m.Purpose,
		&m.Status, &m.ExemptionStatus, &m.ExemptionApprover,
		&m.SourceOfFundsVerified, &m.RecipientVerified,
		&m.ReportedToRegulator, &m.ReportReference, &m.ReportAttempts, &m.LastReportAttemptAt, &m.LastReportError,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return &m, err
}

func collectRemittances(rows pgx.Rows) ([]domain.Remittance, error) {
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Remittance, error) {
		m, err := scanRemittance(row)
		return *m, err
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainRemittanceSlice(ms), nil
}

// SaveRemittance persists a newly created remittance.
func (r *PgxRemittanceRepository) SaveRemittance(ctx context.Context, remittance domain.Remittance) error {
	m := mapping.ToModelRemittance(remittance)
	query := `
		INSERT INTO remittances (` + remittanceColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RemittanceID, m.ReferenceNumber,
		m.SenderUserID, m.SenderName, m.SenderCountry, m.SenderIdentification, m.SenderRiskCategory,
		m.RecipientName, m.RecipientPhone, m.RecipientCountry,
		m.AmountSent, m.AmountReceived, m.CurrencySent, m.CurrencyReceived, m.ExchangeRate, m.Fee, m.Purpose,
		m.Status, m.ExemptionStatus, m.ExemptionApprover,
		m.SourceOfFundsVerified, m.RecipientVerified,
		m.ReportedToRegulator, m.ReportReference, m.ReportAttempts, m.LastReportAttemptAt, m.LastReportError,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: reference number '%s' already exists", apperrors.ErrDuplicate, m.ReferenceNumber)
		}
		return fmt.Errorf("failed to save remittance: %w", err)
	}
	return nil
}

// FindRemittanceByID retrieves a remittance by its ID.
func (r *PgxRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE remittance_id = $1;`
	m, err := scanRemittance(r.pool.QueryRow(ctx, query, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find remittance %s: %w", remittanceID, err)
	}
	d := mapping.ToDomainRemittance(*m)
	return &d, nil
}

// FindRemittanceByReference retrieves a remittance by its reference number.
func (r *PgxRemittanceRepository) FindRemittanceByReference(ctx context.Context, referenceNumber string) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE reference_number = $1;`
	m, err := scanRemittance(r.pool.QueryRow(ctx, query, referenceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find remittance by reference %s: %w", referenceNumber, err)
	}
	d := mapping.ToDomainRemittance(*m)
	return &d, nil
}

// ListRemittances retrieves remittances newest first with an optional status filter.
func (r *PgxRemittanceRepository) ListRemittances(ctx context.Context, status *domain.RemittanceStatus, page, pageSize int) ([]domain.Remittance, int, error) {
	where := ""
	args := []any{}
	argPos := 1
	if status != nil {
		where = fmt.Sprintf(" WHERE status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM remittances"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count remittances: %w", err)
	}

	query := "SELECT " + remittanceColumns + " FROM remittances" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query remittances: %w", err)
	}
	defer rows.Close()

	remittances, err := collectRemittances(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan remittances: %w", err)
	}
	return remittances, total, nil
}

// FindUnreported retrieves reportable-but-unreported remittances within the
// window, oldest first so the longest-waiting rows go out first.
func (r *PgxRemittanceRepository) FindUnreported(ctx context.Context, createdAfter time.Time, threshold decimal.Decimal, limit int) ([]domain.Remittance, error) {
	query := `
		SELECT ` + remittanceColumns + `
		FROM remittances
		WHERE reported_to_regulator = false
		  AND status = 'completed'
		  AND amount_sent >= $1
		  AND created_at >= $2
		ORDER BY created_at ASC
		LIMIT $3;
	`
	rows, err := r.pool.Query(ctx, query, threshold, createdAfter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreported remittances: %w", err)
	}
	defer rows.Close()

	remittances, err := collectRemittances(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan unreported remittances: %w", err)
	}
	return remittances, nil
}

// CountStaleUnreported counts reportable-but-unreported remittances older than
// the cutoff.
func (r *PgxRemittanceRepository) CountStaleUnreported(ctx context.Context, createdBefore time.Time, threshold decimal.Decimal) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM remittances
		WHERE reported_to_regulator = false
		  AND status = 'completed'
		  AND amount_sent >= $1
		  AND created_at < $2;
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, threshold, createdBefore).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stale unreported remittances: %w", err)
	}
	return count, nil
}

// FindPendingExemptions retrieves remittances awaiting an exemption decision
// within the window, oldest first.
func (r *PgxRemittanceRepository) FindPendingExemptions(ctx context.Context, createdAfter time.Time) ([]domain.Remittance, error) {
	query := `
		SELECT ` + remittanceColumns + `
		FROM remittances
		WHERE exemption_status = 'pending'
		  AND created_at >= $1
		ORDER BY created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, createdAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending exemptions: %w", err)
	}
	defer rows.Close()

	remittances, err := collectRemittances(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending exemptions: %w", err)
	}
	return remittances, nil
}

// UpdateStatus persists a status change.
func (r *PgxRemittanceRepository) UpdateStatus(ctx context.Context, remittanceID string, status domain.RemittanceStatus, updaterUserID string) error {
	query := `
		UPDATE remittances
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE remittance_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, remittanceID, string(status), time.Now().UTC(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to update remittance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkReported flips reported_to_regulator false -> true and stores the
// regulator's report reference. The WHERE clause makes the update conditional,
// so concurrent dispatchers race safely: exactly one caller gets true.
func (r *PgxRemittanceRepository) MarkReported(ctx context.Context, remittanceID, reportReference string) (bool, error) {
	query := `
		UPDATE remittances
		SET reported_to_regulator = true,
			report_reference = $2,
			last_updated_at = $3
		WHERE remittance_id = $1 AND reported_to_regulator = false;
	`
	tag, err := r.pool.Exec(ctx, query, remittanceID, reportReference, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to mark remittance reported: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RecordReportAttempt increments the attempt counter and stores the attempt
// timestamp and error text. A nil attemptErr clears the stored error.
func (r *PgxRemittanceRepository) RecordReportAttempt(ctx context.Context, remittanceID string, attemptedAt time.Time, attemptErr *string) error {
	query := `
		UPDATE remittances
		SET report_attempts = report_attempts + 1,
			last_report_attempt_at = $2,
			last_report_error = $3
		WHERE remittance_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, remittanceID, attemptedAt, attemptErr)
	if err != nil {
		return fmt.Errorf("failed to record report attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateExemptionStatus conditionally moves the exemption status from the
// expected current value. Returns false when the row was not in the expected
// status, i.e. a concurrent actor decided first.
func (r *PgxRemittanceRepository) UpdateExemptionStatus(ctx context.Context, remittanceID string, from, to domain.ExemptionStatus, approver *string) (bool, error) {
	query := `
		UPDATE remittances
		SET exemption_status = $3,
			exemption_approver = $4,
			last_updated_at = $5
		WHERE remittance_id = $1 AND exemption_status = $2;
	`
	tag, err := r.pool.Exec(ctx, query, remittanceID, string(from), string(to), approver, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to update exemption status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
