package domain

import "github.com/shopspring/decimal"

// RemittanceQuote is the priced result of the fee & conversion engine for a
// prospective transfer. All amounts are rounded to the receiving/sending
// currency precision; the rate is the unrounded snapshot used.
type RemittanceQuote struct {
	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	CurrencySent     string          `json:"currencySent"`
	CurrencyReceived string          `json:"currencyReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Fee              decimal.Decimal `json:"fee"`
	TotalDebit       decimal.Decimal `json:"totalDebit"` // AmountSent + Fee
}
