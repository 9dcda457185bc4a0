package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	"github.com/remitflow/remit_backend/internal/models"
	"github.com/remitflow/remit_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, from_currency_code, to_currency_code, rate, source,
	is_latest, captured_at, created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	baseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{baseRepository{pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new rate capture and clears the previous latest
// flag for the pair in the same transaction, so at most one row per pair
// carries is_latest = true at any point.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	clearQuery := `
		UPDATE exchange_rates
		SET is_latest = false, last_updated_at = $3, last_updated_by = $4
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_latest = true;
	`
	if _, err := tx.Exec(ctx, clearQuery, m.FromCurrencyCode, m.ToCurrencyCode, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to clear previous latest rate for %s->%s: %w", m.FromCurrencyCode, m.ToCurrencyCode, err)
	}

	insertQuery := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode, m.Rate, m.Source,
		m.IsLatest, m.CapturedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindLatestRate retrieves the rate marked latest for the exact pair.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_latest = true;
	`
	var m models.ExchangeRate
	err := r.pool.QueryRow(ctx, query, fromCode, toCode).Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.Source,
		&m.IsLatest, &m.CapturedAt, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate %s->%s: %w", fromCode, toCode, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates retrieves historical rate captures with optional pair
// filters, newest capture first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode *string, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argPos := 1
	if fromCode != nil {
		where += fmt.Sprintf(" AND from_currency_code = $%d", argPos)
		args = append(args, *fromCode)
		argPos++
	}
	if toCode != nil {
		where += fmt.Sprintf(" AND to_currency_code = $%d", argPos)
		args = append(args, *toCode)
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM exchange_rates" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	listQuery := "SELECT " + exchangeRateColumns + " FROM exchange_rates" + where +
		fmt.Sprintf(" ORDER BY captured_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var m models.ExchangeRate
		err := row.Scan(
			&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.Source,
			&m.IsLatest, &m.CapturedAt, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(rates), total, nil
}
