package domain_test

import (
	"testing"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name string
		from domain.RemittanceStatus
		to   domain.RemittanceStatus
		want bool
	}{
		{"pending to processing", domain.RemittancePending, domain.RemittanceProcessing, true},
		{"pending to cancelled", domain.RemittancePending, domain.RemittanceCancelled, true},
		{"pending to completed skips processing", domain.RemittancePending, domain.RemittanceCompleted, false},
		{"pending to failed", domain.RemittancePending, domain.RemittanceFailed, false},
		{"processing to completed", domain.RemittanceProcessing, domain.RemittanceCompleted, true},
		{"processing to failed", domain.RemittanceProcessing, domain.RemittanceFailed, true},
		{"processing to cancelled", domain.RemittanceProcessing, domain.RemittanceCancelled, false},
		{"processing back to pending", domain.RemittanceProcessing, domain.RemittancePending, false},
		{"completed is terminal", domain.RemittanceCompleted, domain.RemittanceFailed, false},
		{"failed is terminal", domain.RemittanceFailed, domain.RemittancePending, false},
		{"cancelled is terminal", domain.RemittanceCancelled, domain.RemittanceProcessing, false},
		{"same status is not a transition", domain.RemittancePending, domain.RemittancePending, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := domain.Remittance{Status: tc.from}
			assert.Equal(t, tc.want, r.CanTransitionTo(tc.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, domain.IsTerminalStatus(domain.RemittancePending))
	assert.False(t, domain.IsTerminalStatus(domain.RemittanceProcessing))
	assert.True(t, domain.IsTerminalStatus(domain.RemittanceCompleted))
	assert.True(t, domain.IsTerminalStatus(domain.RemittanceFailed))
	assert.True(t, domain.IsTerminalStatus(domain.RemittanceCancelled))
}

func TestExemptionDecided(t *testing.T) {
	testCases := []struct {
		status domain.ExemptionStatus
		want   bool
	}{
		{domain.ExemptionNone, false},
		{domain.ExemptionPending, false},
		{domain.ExemptionApproved, true},
		{domain.ExemptionRejected, true},
	}
	for _, tc := range testCases {
		r := domain.Remittance{ExemptionStatus: tc.status}
		assert.Equal(t, tc.want, r.ExemptionDecided(), "status %s", tc.status)
	}
}
