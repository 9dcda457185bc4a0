package pgsql

import (
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the pgx-backed repository set over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CurrencyRepo:     NewPgxCurrencyRepository(pool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(pool),
		RemittanceRepo:   NewPgxRemittanceRepository(pool),
	}
}
