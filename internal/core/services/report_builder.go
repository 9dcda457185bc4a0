package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
	"github.com/google/uuid"
)

// ReportBuilderService assembles canonical regulator report payloads from
// remittances. A pure mapping: it never mutates the remittance and never
// silently omits a required field.
type ReportBuilderService struct {
	entity domain.ReportingEntity
	now    func() time.Time
}

// NewReportBuilderService creates a new ReportBuilderService.
func NewReportBuilderService(cfg *config.Config) *ReportBuilderService {
	return &ReportBuilderService{
		entity: domain.ReportingEntity{
			Name:          cfg.ReportingEntityName,
			LicenseNumber: cfg.ReportingEntityLicense,
			Country:       cfg.ReportingEntityCountry,
		},
		now: time.Now,
	}
}

var _ portssvc.ReportBuilderSvc = (*ReportBuilderService)(nil)

// BuildReportPayload maps a remittance into the regulator's fixed schema.
// Returns apperrors.ErrIncompleteData naming every missing required field.
func (s *ReportBuilderService) BuildReportPayload(remittance *domain.Remittance) (*domain.RegulatorReport, error) {
	if missing := missingReportFields(remittance); len(missing) > 0 {
		return nil, fmt.Errorf("%w: remittance %s missing fields: %s",
			apperrors.ErrIncompleteData, remittance.RemittanceID, strings.Join(missing, ", "))
	}

	return &domain.RegulatorReport{
		TransactionType: domain.TransactionTypeRemittance,
		ReferenceNumber: remittance.ReferenceNumber,
		ReportingEntity: s.entity,
		Sender: domain.ReportSender{
			Name:           remittance.SenderName,
			Country:        remittance.SenderCountry,
			Identification: remittance.SenderIdentification,
		},
		Recipient: domain.ReportRecipient{
			Name:    remittance.RecipientName,
			Country: remittance.RecipientCountry,
			Phone:   remittance.RecipientPhone,
		},
		TransactionDetails: domain.ReportTransactionDetails{
			AmountSent:       remittance.AmountSent,
			AmountReceived:   remittance.AmountReceived,
			CurrencySent:     remittance.CurrencySent,
			CurrencyReceived: remittance.CurrencyReceived,
			ExchangeRate:     remittance.ExchangeRate,
			Fee:              remittance.Fee,
			Purpose:          remittance.Purpose,
		},
		ComplianceInfo: domain.ReportComplianceInfo{
			SourceOfFundsVerified: remittance.SourceOfFundsVerified,
			RecipientVerified:     remittance.RecipientVerified,
			ExemptionStatus:       string(remittance.ExemptionStatus),
			ExemptionApprover:     remittance.ExemptionApprover,
		},
		ReportingTimestamp: s.now().UTC(),
		TransactionDate:    remittance.CreatedAt.UTC(),
	}, nil
}

// BuildBatchPayload wraps per-transaction reports into a single submission
// keyed by reference number. Any incomplete remittance fails the whole build;
// the dispatcher filters those out per item before calling.
func (s *ReportBuilderService) BuildBatchPayload(remittances []*domain.Remittance) (*domain.RegulatorBatchReport, error) {
	transactions := make([]domain.RegulatorReport, 0, len(remittances))
	for _, r := range remittances {
		report, err := s.BuildReportPayload(r)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *report)
	}

	return &domain.RegulatorBatchReport{
		BatchID:            uuid.NewString(),
		ReportingTimestamp: s.now().UTC(),
		Transactions:       transactions,
	}, nil
}

// missingReportFields lists the required sender/recipient/transaction fields
// that are empty on the remittance.
func missingReportFields(r *domain.Remittance) []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"reference_number", r.ReferenceNumber},
		{"sender.name", r.SenderName},
		{"sender.country", r.SenderCountry},
		{"sender.identification", r.SenderIdentification},
		{"recipient.name", r.RecipientName},
		{"recipient.country", r.RecipientCountry},
		{"recipient.phone", r.RecipientPhone},
		{"transaction_details.currency_sent", r.CurrencySent},
		{"transaction_details.currency_received", r.CurrencyReceived},
		{"transaction_details.purpose", r.Purpose},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
