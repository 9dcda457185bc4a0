package mapping

import (
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/models"
)

// ToModelRemittance converts a domain Remittance to a model Remittance
func ToModelRemittance(d domain.Remittance) models.Remittance {
	return models.Remittance{
		RemittanceID:          d.RemittanceID,
		ReferenceNumber:       d.ReferenceNumber,
		SenderUserID:          d.SenderUserID,
		SenderName:            d.SenderName,
		SenderCountry:         d.SenderCountry,
		SenderIdentification:  d.SenderIdentification,
		SenderRiskCategory:    string(d.SenderRiskCategory),
		RecipientName:         d.RecipientName,
		RecipientPhone:        d.RecipientPhone,
		RecipientCountry:      d.RecipientCountry,
		AmountSent:            d.AmountSent,
		AmountReceived:        d.AmountReceived,
		CurrencySent:          d.CurrencySent,
		CurrencyReceived:      d.CurrencyReceived,
		ExchangeRate:          d.ExchangeRate,
		Fee:                   d.Fee,
		Purpose:               d.Purpose,
		Status:                string(d.Status),
		ExemptionStatus:       string(d.ExemptionStatus),
		ExemptionApprover:     d.ExemptionApprover,
		SourceOfFundsVerified: d.SourceOfFundsVerified,
		RecipientVerified:     d.RecipientVerified,
		ReportedToRegulator:   d.ReportedToRegulator,
		ReportReference:       d.ReportReference,
		ReportAttempts:        d.ReportAttempts,
		LastReportAttemptAt:   d.LastReportAttemptAt,
		LastReportError:       d.LastReportError,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRemittance converts a model Remittance to a domain Remittance
func ToDomainRemittance(m models.Remittance) domain.Remittance {
	return domain.Remittance{
		RemittanceID:          m.RemittanceID,
		ReferenceNumber:       m.ReferenceNumber,
		SenderUserID:          m.SenderUserID,
		SenderName:            m.SenderName,
		SenderCountry:         m.SenderCountry,
		SenderIdentification:  m.SenderIdentification,
		SenderRiskCategory:    domain.RiskCategory(m.SenderRiskCategory),
		RecipientName:         m.RecipientName,
		RecipientPhone:        m.RecipientPhone,
		RecipientCountry:      m.RecipientCountry,
		AmountSent:            m.AmountSent,
		AmountReceived:        m.AmountReceived,
		CurrencySent:          m.CurrencySent,
		CurrencyReceived:      m.CurrencyReceived,
		ExchangeRate:          m.ExchangeRate,
		Fee:                   m.Fee,
		Purpose:               m.Purpose,
		Status:                domain.RemittanceStatus(m.Status),
		ExemptionStatus:       domain.ExemptionStatus(m.ExemptionStatus),
		ExemptionApprover:     m.ExemptionApprover,
		SourceOfFundsVerified: m.SourceOfFundsVerified,
		RecipientVerified:     m.RecipientVerified,
		ReportedToRegulator:   m.ReportedToRegulator,
		ReportReference:       m.ReportReference,
		ReportAttempts:        m.ReportAttempts,
		LastReportAttemptAt:   m.LastReportAttemptAt,
		LastReportError:       m.LastReportError,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRemittanceSlice converts a slice of model Remittances to domain Remittances
func ToDomainRemittanceSlice(ms []models.Remittance) []domain.Remittance {
	ds := make([]domain.Remittance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRemittance(m)
	}
	return ds
}
