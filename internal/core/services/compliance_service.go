package services

import (
	"github.com/remitflow/remit_backend/internal/core/domain"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

// ComplianceService implements the reporting eligibility engine. Eligibility
// is a pure function of the amount and the configured threshold, evaluated at
// report time so policy changes take effect without data migration.
type ComplianceService struct {
	reportingThreshold decimal.Decimal
	autoApproveLimit   decimal.Decimal
}

// NewComplianceService creates a new ComplianceService from the typed config.
func NewComplianceService(cfg *config.Config) *ComplianceService {
	return &ComplianceService{
		reportingThreshold: cfg.ReportingThreshold,
		autoApproveLimit:   cfg.ExemptionAutoApproveLimit,
	}
}

var _ portssvc.ComplianceSvc = (*ComplianceService)(nil)

// RequiresReporting reports whether amountSent must be disclosed. The
// boundary is inclusive: amountSent == threshold requires reporting.
func (s *ComplianceService) RequiresReporting(amountSent decimal.Decimal) bool {
	return amountSent.GreaterThanOrEqual(s.reportingThreshold)
}

// EvaluateExemption applies the risk policy to an exemption request:
// approved when sender risk is low AND the amount is within the auto-approve
// limit; everything else stays pending for manual review. The engine never
// auto-rejects.
//
// An approved exemption changes the report content (compliance_info block),
// never whether a report is sent: above-threshold transfers are always
// reported.
func (s *ComplianceService) EvaluateExemption(remittance *domain.Remittance) domain.ExemptionStatus {
	if remittance.SenderRiskCategory == domain.RiskLow && remittance.AmountSent.LessThanOrEqual(s.autoApproveLimit) {
		return domain.ExemptionApproved
	}
	return domain.ExemptionPending
}
