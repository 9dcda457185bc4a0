package domain

// Currency represents a supported currency in the domain.
// A currency is immutable once exchange rates reference it; deactivation is
// the only mutation allowed after that point.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Minor unit digits, e.g. 2 for USD, 0 for JPY
	IsActive     bool   `json:"isActive"`
	AuditFields
}
