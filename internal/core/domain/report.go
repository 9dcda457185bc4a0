package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTypeRemittance is the regulator's transaction_type discriminator
// for cross-border transfers.
const TransactionTypeRemittance = "cross_border_remittance"

// ReportingEntity identifies the licensed institution submitting reports.
type ReportingEntity struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Country       string `json:"country"`
}

// ReportSender is the sender block of a regulator report.
type ReportSender struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	Identification string `json:"identification"`
}

// ReportRecipient is the recipient block of a regulator report.
type ReportRecipient struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// ReportTransactionDetails carries the monetary facts of the transfer.
// Amounts are serialized as JSON numbers; decimal.Decimal marshals to its
// exact string-of-digits representation via MarshalJSON.
type ReportTransactionDetails struct {
	AmountSent       decimal.Decimal `json:"amount_sent"`
	AmountReceived   decimal.Decimal `json:"amount_received"`
	CurrencySent     string          `json:"currency_sent"`
	CurrencyReceived string          `json:"currency_received"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	Fee              decimal.Decimal `json:"fee"`
	Purpose          string          `json:"purpose"`
}

// ReportComplianceInfo carries the due-diligence flags of the transfer.
type ReportComplianceInfo struct {
	SourceOfFundsVerified bool    `json:"source_of_funds_verified"`
	RecipientVerified     bool    `json:"recipient_verified"`
	ExemptionStatus       string  `json:"exemption_status"`
	ExemptionApprover     *string `json:"exemption_approver"`
}

// RegulatorReport is the canonical per-transaction payload submitted to the
// financial regulator. The field set is fixed by the regulator's schema.
type RegulatorReport struct {
	TransactionType    string                   `json:"transaction_type"`
	ReferenceNumber    string                   `json:"reference_number"`
	ReportingEntity    ReportingEntity          `json:"reporting_entity"`
	Sender             ReportSender             `json:"sender"`
	Recipient          ReportRecipient          `json:"recipient"`
	TransactionDetails ReportTransactionDetails `json:"transaction_details"`
	ComplianceInfo     ReportComplianceInfo     `json:"compliance_info"`
	ReportingTimestamp time.Time                `json:"reporting_timestamp"`
	TransactionDate    time.Time                `json:"transaction_date"`
}

// RegulatorBatchReport wraps multiple reports into a single submission.
type RegulatorBatchReport struct {
	BatchID            string            `json:"batch_id"`
	ReportingTimestamp time.Time         `json:"reporting_timestamp"`
	Transactions       []RegulatorReport `json:"transactions"`
}

// ReportOutcomeKind discriminates the result of a dispatch attempt.
type ReportOutcomeKind string

const (
	ReportSkipped   ReportOutcomeKind = "skipped"
	ReportDelivered ReportOutcomeKind = "reported"
	ReportFailed    ReportOutcomeKind = "failed"
)

// SkipReason explains why a dispatch attempt was intentionally not performed.
type SkipReason string

const (
	SkipReportingDisabled SkipReason = "reporting_disabled"
	SkipBelowThreshold    SkipReason = "below_threshold"
	SkipAlreadyReported   SkipReason = "already_reported"
)

// ReportOutcome is the tagged result of a single dispatch attempt. The
// short-circuit paths (disabled configuration, below threshold, already
// reported) are first-class values rather than errors or control-flow
// side effects.
type ReportOutcome struct {
	Kind       ReportOutcomeKind `json:"kind"`
	SkipReason SkipReason        `json:"skipReason,omitempty"`
	ReportID   string            `json:"reportID,omitempty"`
	Err        error             `json:"-"`
}

// Skipped constructs a skip outcome.
func Skipped(reason SkipReason) ReportOutcome {
	return ReportOutcome{Kind: ReportSkipped, SkipReason: reason}
}

// Reported constructs a success outcome carrying the regulator's report id.
func Reported(reportID string) ReportOutcome {
	return ReportOutcome{Kind: ReportDelivered, ReportID: reportID}
}

// FailedOutcome constructs a failure outcome; the remittance stays unreported.
func FailedOutcome(err error) ReportOutcome {
	return ReportOutcome{Kind: ReportFailed, Err: err}
}

// ReconciliationSummary describes one reconciliation pass over the unreported
// backlog.
type ReconciliationSummary struct {
	Scanned      int `json:"scanned"`
	Reported     int `json:"reported"`
	StillPending int `json:"stillPending"`
	StaleBacklog int `json:"staleBacklog"` // Unreported rows older than the window, need manual attention
}
