package services_test

import (
	"testing"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequiresReporting_Boundary(t *testing.T) {
	svc := services.NewComplianceService(testConfig())

	tests := []struct {
		name   string
		amount string
		want   bool
	}{
		{"well below threshold", "10.00", false},
		{"just below threshold", "999.99", false},
		{"exactly at threshold", "1000.00", true},
		{"just above threshold", "1000.01", true},
		{"well above threshold", "250000.00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.RequiresReporting(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateExemption_Policy(t *testing.T) {
	svc := services.NewComplianceService(testConfig())

	tests := []struct {
		name   string
		risk   domain.RiskCategory
		amount string
		want   domain.ExemptionStatus
	}{
		{"low risk within limit", domain.RiskLow, "100.00", domain.ExemptionApproved},
		{"low risk at limit", domain.RiskLow, "500.00", domain.ExemptionApproved},
		{"low risk above limit", domain.RiskLow, "500.01", domain.ExemptionPending},
		{"medium risk within limit", domain.RiskMedium, "100.00", domain.ExemptionPending},
		{"high risk within limit", domain.RiskHigh, "100.00", domain.ExemptionPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.Remittance{
				SenderRiskCategory: tt.risk,
				AmountSent:         decimal.RequireFromString(tt.amount),
			}
			assert.Equal(t, tt.want, svc.EvaluateExemption(r))
		})
	}
}

// The policy never auto-rejects and is deterministic: the same remittance
// always yields the same verdict.
func TestEvaluateExemption_Deterministic(t *testing.T) {
	svc := services.NewComplianceService(testConfig())
	r := &domain.Remittance{
		SenderRiskCategory: domain.RiskLow,
		AmountSent:         decimal.RequireFromString("499.99"),
	}
	first := svc.EvaluateExemption(r)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.EvaluateExemption(r))
	}
	assert.NotEqual(t, domain.ExemptionRejected, first)
}
