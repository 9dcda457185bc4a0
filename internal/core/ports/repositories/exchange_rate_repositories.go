package repositories

import (
	"context"

	"github.com/remitflow/remit_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRate retrieves the rate marked latest for the exact pair.
	// Inverse-pair fallback is the conversion engine's concern, not the
	// repository's.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves historical rates with optional pair filters,
	// newest capture first, with offset pagination. Returns rates and total count.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new rate capture and, in the same
	// transaction, clears the is_latest flag of the previous latest row for
	// the pair.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
