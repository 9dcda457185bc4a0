package utils

import (
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundToCurrencyPrecision rounds an amount to the minor-unit precision of the
// given currency using round-half-up.
// Example: amount 12.345 with USD (precision 2) returns 12.35
// Example: amount 12.345 with JPY (precision 0) returns 12
func RoundToCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return amount.Round(int32(currency.Precision))
}

// RoundToPrecision rounds an amount to the given precision using round-half-up.
// Convenience function when only the precision value is at hand.
func RoundToPrecision(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.Round(int32(precision))
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for
// a given currency.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return RoundToCurrencyPrecision(amount, currency).StringFixed(int32(currency.Precision))
}
