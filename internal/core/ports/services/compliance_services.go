package services

import (
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComplianceSvc is the reporting eligibility engine. Both operations are pure
// functions of their inputs and the configured policy; eligibility is always
// evaluated at report time, never stored.
type ComplianceSvc interface {
	// RequiresReporting reports whether a transfer of amountSent (base
	// currency) must be disclosed to the regulator. The threshold boundary is
	// inclusive: amountSent == threshold requires reporting.
	RequiresReporting(amountSent decimal.Decimal) bool

	// EvaluateExemption decides an exemption request: approved when the sender
	// risk category is low AND amountSent <= the auto-approve limit, otherwise
	// pending for manual review. Never auto-rejects. An exemption changes the
	// report content, never whether a report is sent.
	EvaluateExemption(remittance *domain.Remittance) domain.ExemptionStatus
}
