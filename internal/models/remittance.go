package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remittance is the persisted row for a cross-border transfer, including the
// embedded regulator report attempt tracking.
type Remittance struct {
	RemittanceID    string `json:"remittanceID"` // Primary Key (UUID)
	ReferenceNumber string `json:"referenceNumber"`

	SenderUserID         string `json:"senderUserID"`
	SenderName           string `json:"senderName"`
	SenderCountry        string `json:"senderCountry"`
	SenderIdentification string `json:"senderIdentification"`
	SenderRiskCategory   string `json:"senderRiskCategory"` // low | medium | high

	RecipientName    string `json:"recipientName"`
	RecipientPhone   string `json:"recipientPhone"`
	RecipientCountry string `json:"recipientCountry"`

	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	CurrencySent     string          `json:"currencySent"`
	CurrencyReceived string          `json:"currencyReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Fee              decimal.Decimal `json:"fee"`
	Purpose          string          `json:"purpose"`

	Status string `json:"status"` // pending | processing | completed | failed | cancelled

	ExemptionStatus   string  `json:"exemptionStatus"` // none | pending | approved | rejected
	ExemptionApprover *string `json:"exemptionApprover,omitempty"`

	SourceOfFundsVerified bool `json:"sourceOfFundsVerified"`
	RecipientVerified     bool `json:"recipientVerified"`

	ReportedToRegulator bool       `json:"reportedToRegulator"`
	ReportReference     *string    `json:"reportReference,omitempty"`
	ReportAttempts      int        `json:"reportAttempts"`
	LastReportAttemptAt *time.Time `json:"lastReportAttemptAt,omitempty"`
	LastReportError     *string    `json:"lastReportError,omitempty"`

	AuditFields
}
