package services_test

import (
	"testing"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRemittance() *domain.Remittance {
	approver := "reviewer-1"
	return &domain.Remittance{
		RemittanceID:         "rem-1",
		ReferenceNumber:      "RF-20260815093000-AB12CD34",
		SenderName:           "Ama Mensah",
		SenderCountry:        "US",
		SenderIdentification: "P1234567",
		SenderRiskCategory:   domain.RiskLow,
		RecipientName:        "Kofi Mensah",
		RecipientPhone:       "+233201234567",
		RecipientCountry:     "GH",
		AmountSent:           decimal.RequireFromString("1500.00"),
		AmountReceived:       decimal.RequireFromString("24000.00"),
		CurrencySent:         "USD",
		CurrencyReceived:     "GHS",
		ExchangeRate:         decimal.RequireFromString("16.00"),
		Fee:                  decimal.RequireFromString("25.00"),
		Purpose:              "family support",
		Status:               domain.RemittanceCompleted,
		ExemptionStatus:      domain.ExemptionApproved,
		ExemptionApprover:    &approver,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestBuildReportPayload_CompleteRemittance(t *testing.T) {
	builder := services.NewReportBuilderService(testConfig())
	r := completeRemittance()

	report, err := builder.BuildReportPayload(r)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeRemittance, report.TransactionType)
	assert.Equal(t, r.ReferenceNumber, report.ReferenceNumber)
	assert.Equal(t, "RemitFlow Ltd", report.ReportingEntity.Name)
	assert.Equal(t, "MSB-12345", report.ReportingEntity.LicenseNumber)
	assert.Equal(t, "Ama Mensah", report.Sender.Name)
	assert.Equal(t, "GH", report.Recipient.Country)
	assert.True(t, report.TransactionDetails.AmountSent.Equal(r.AmountSent))
	assert.True(t, report.TransactionDetails.ExchangeRate.Equal(r.ExchangeRate))
	assert.Equal(t, "approved", report.ComplianceInfo.ExemptionStatus)
	require.NotNil(t, report.ComplianceInfo.ExemptionApprover)
	assert.Equal(t, "reviewer-1", *report.ComplianceInfo.ExemptionApprover)
	assert.Equal(t, r.CreatedAt, report.TransactionDate)
	assert.False(t, report.ReportingTimestamp.IsZero())
}

func TestBuildReportPayload_MissingFields(t *testing.T) {
	builder := services.NewReportBuilderService(testConfig())
	r := completeRemittance()
	r.SenderIdentification = ""
	r.RecipientPhone = "   "

	_, err := builder.BuildReportPayload(r)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteData)
	// The error names every missing field so remediation is one read away.
	assert.Contains(t, err.Error(), "sender.identification")
	assert.Contains(t, err.Error(), "recipient.phone")
}

func TestBuildReportPayload_DoesNotMutateRemittance(t *testing.T) {
	builder := services.NewReportBuilderService(testConfig())
	r := completeRemittance()
	before := *r

	_, err := builder.BuildReportPayload(r)
	require.NoError(t, err)

	assert.Equal(t, before, *r)
}

func TestBuildBatchPayload(t *testing.T) {
	builder := services.NewReportBuilderService(testConfig())
	first := completeRemittance()
	second := completeRemittance()
	second.RemittanceID = "rem-2"
	second.ReferenceNumber = "RF-20260815094500-EF56AB78"

	batch, err := builder.BuildBatchPayload([]*domain.Remittance{first, second})
	require.NoError(t, err)

	assert.NotEmpty(t, batch.BatchID)
	require.Len(t, batch.Transactions, 2)
	assert.Equal(t, first.ReferenceNumber, batch.Transactions[0].ReferenceNumber)
	assert.Equal(t, second.ReferenceNumber, batch.Transactions[1].ReferenceNumber)
}

func TestBuildBatchPayload_FailsOnIncompleteItem(t *testing.T) {
	builder := services.NewReportBuilderService(testConfig())
	first := completeRemittance()
	second := completeRemittance()
	second.Purpose = ""

	_, err := builder.BuildBatchPayload([]*domain.Remittance{first, second})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteData)
}
