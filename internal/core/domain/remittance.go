package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceStatus is the processing state of a cross-border transfer.
type RemittanceStatus string

const (
	RemittancePending    RemittanceStatus = "pending"
	RemittanceProcessing RemittanceStatus = "processing"
	RemittanceCompleted  RemittanceStatus = "completed"
	RemittanceFailed     RemittanceStatus = "failed"
	RemittanceCancelled  RemittanceStatus = "cancelled"
)

// ExemptionStatus tracks the due-diligence exemption workflow for a remittance.
// Once decided (approved/rejected) the status is terminal; reopening requires
// an explicit new exemption request.
type ExemptionStatus string

const (
	ExemptionNone     ExemptionStatus = "none"
	ExemptionPending  ExemptionStatus = "pending"
	ExemptionApproved ExemptionStatus = "approved"
	ExemptionRejected ExemptionStatus = "rejected"
)

// RiskCategory is the sender's risk classification supplied by the (external)
// KYC pipeline.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// Remittance represents a cross-border money transfer.
// AmountReceived = AmountSent * ExchangeRate, computed once at creation and
// never recomputed. ReportedToRegulator transitions false->true only.
// Remittances are never deleted (regulatory retention).
type Remittance struct {
	RemittanceID    string `json:"remittanceID"`    // Primary Key (UUID)
	ReferenceNumber string `json:"referenceNumber"` // Unique, generated

	SenderUserID         string       `json:"senderUserID"` // External identity reference
	SenderName           string       `json:"senderName"`
	SenderCountry        string       `json:"senderCountry"`
	SenderIdentification string       `json:"senderIdentification"`
	SenderRiskCategory   RiskCategory `json:"senderRiskCategory"`

	RecipientName    string `json:"recipientName"`
	RecipientPhone   string `json:"recipientPhone"`
	RecipientCountry string `json:"recipientCountry"`

	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	CurrencySent     string          `json:"currencySent"`
	CurrencyReceived string          `json:"currencyReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"` // Snapshot at creation
	Fee              decimal.Decimal `json:"fee"`
	Purpose          string          `json:"purpose"`

	Status RemittanceStatus `json:"status"`

	ExemptionStatus   ExemptionStatus `json:"exemptionStatus"`
	ExemptionApprover *string         `json:"exemptionApprover,omitempty"`

	SourceOfFundsVerified bool `json:"sourceOfFundsVerified"`
	RecipientVerified     bool `json:"recipientVerified"`

	ReportedToRegulator bool       `json:"reportedToRegulator"`
	ReportReference     *string    `json:"reportReference,omitempty"`
	ReportAttempts      int        `json:"reportAttempts"`
	LastReportAttemptAt *time.Time `json:"lastReportAttemptAt,omitempty"`
	LastReportError     *string    `json:"lastReportError,omitempty"`

	AuditFields
}

// validStatusTransitions enumerates the allowed remittance status moves.
// completed, failed and cancelled are terminal.
var validStatusTransitions = map[RemittanceStatus][]RemittanceStatus{
	RemittancePending:    {RemittanceProcessing, RemittanceCancelled},
	RemittanceProcessing: {RemittanceCompleted, RemittanceFailed},
}

// CanTransitionTo reports whether the remittance status may move to next.
func (r *Remittance) CanTransitionTo(next RemittanceStatus) bool {
	for _, allowed := range validStatusTransitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether the status admits no further transitions.
func IsTerminalStatus(s RemittanceStatus) bool {
	return len(validStatusTransitions[s]) == 0
}

// ExemptionDecided reports whether the exemption workflow has reached a
// terminal decision for this remittance.
func (r *Remittance) ExemptionDecided() bool {
	return r.ExemptionStatus == ExemptionApproved || r.ExemptionStatus == ExemptionRejected
}
