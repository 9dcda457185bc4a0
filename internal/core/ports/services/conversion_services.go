package services

import (
	"context"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvc is the fee & conversion engine. Pure computation over the
// latest rate snapshot; no side effects.
type ConversionSvc interface {
	// Convert converts amount from one currency to another using the latest
	// rate for the pair, falling back to the inverted inverse-pair rate.
	// Returns apperrors.ErrRateUnavailable when neither direction has a rate.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, *domain.ExchangeRate, error)

	// ComputeFee computes baseFee + amount * feePercentage, rounded half-up to
	// the base currency's minor-unit precision.
	ComputeFee(amount decimal.Decimal) decimal.Decimal

	// QuoteRemittance prices a prospective transfer from the base currency into
	// toCode: converted amount, rate snapshot, fee and total debit.
	QuoteRemittance(ctx context.Context, amountSent decimal.Decimal, toCode string) (*domain.RemittanceQuote, error)
}
