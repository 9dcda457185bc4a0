package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores a captured conversion rate between two currencies.
// Note: Rate uses github.com/shopspring/decimal for precise arithmetic.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"` // manual | admin | external
	IsLatest         bool            `json:"isLatest"`
	CapturedAt       time.Time       `json:"capturedAt"`
	AuditFields
}
