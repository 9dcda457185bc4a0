package models

// Currency represents a supported currency row.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
