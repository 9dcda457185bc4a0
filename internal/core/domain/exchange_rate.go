package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where an exchange rate capture came from.
type RateSource string

const (
	RateSourceManual   RateSource = "manual"
	RateSourceAdmin    RateSource = "admin"
	RateSourceExternal RateSource = "external"
)

// ExchangeRate stores the conversion rate between two currencies.
// For each (from, to) pair at most one row carries IsLatest=true; saving a
// newer capture flips the previous latest off in the same transaction.
// Rate must be strictly positive.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	IsLatest         bool            `json:"isLatest"`
	CapturedAt       time.Time       `json:"capturedAt"`
	AuditFields
}
