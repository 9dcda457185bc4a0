package services

import (
	"context"
	"fmt"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/dto"
	"github.com/remitflow/remit_backend/internal/middleware"
	"github.com/remitflow/remit_backend/internal/utils"
	"github.com/google/uuid"
)

// onDemandReportTimeout bounds the background dispatch fired when a
// remittance completes. Generous enough for the single-report timeout plus
// the surrounding repository calls.
const onDemandReportTimeout = 45 * time.Second

// RemittanceService provides the remittance lifecycle: creation with a priced
// quote snapshot, status transitions, and the completed-status hook that
// triggers regulator reporting.
type RemittanceService struct {
	BaseService
	remittanceRepo portsrepo.RemittanceRepositoryFacade
	conversion     portssvc.ConversionSvc
	compliance     portssvc.ComplianceSvc
	reporting      portssvc.ReportingSvc

	now func() time.Time
}

// NewRemittanceService creates a new RemittanceService.
func NewRemittanceService(
	remittanceRepo portsrepo.RemittanceRepositoryFacade,
	conversion portssvc.ConversionSvc,
	compliance portssvc.ComplianceSvc,
	reporting portssvc.ReportingSvc,
) *RemittanceService {
	return &RemittanceService{
		remittanceRepo: remittanceRepo,
		conversion:     conversion,
		compliance:     compliance,
		reporting:      reporting,
		now:            time.Now,
	}
}

var _ portssvc.RemittanceSvcFacade = (*RemittanceService)(nil)

// CreateRemittance prices the transfer, snapshots the quote onto the new
// remittance and persists it in status pending. The amounts and rate stored
// here are final: later rate captures never touch an existing remittance.
func (s *RemittanceService) CreateRemittance(ctx context.Context, req dto.CreateRemittanceRequest, creatorUserID string) (*domain.Remittance, error) {
	quote, err := s.conversion.QuoteRemittance(ctx, req.AmountSent, req.CurrencyReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to quote remittance: %w", err)
	}

	riskCategory := domain.RiskCategory(req.SenderRiskCategory)
	if riskCategory == "" {
		// Unclassified senders get the most conservative treatment.
		riskCategory = domain.RiskHigh
	}

	now := s.now()
	referenceNumber, err := utils.GenerateReferenceNumber(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference number: %w", err)
	}

	remittance := domain.Remittance{
		RemittanceID:    uuid.NewString(),
		ReferenceNumber: referenceNumber,

		SenderUserID:         creatorUserID,
		SenderName:           req.SenderName,
		SenderCountry:        req.SenderCountry,
		SenderIdentification: req.SenderIdentification,
		SenderRiskCategory:   riskCategory,

		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientCountry: req.RecipientCountry,

		AmountSent:       quote.AmountSent,
		AmountReceived:   quote.AmountReceived,
		CurrencySent:     quote.CurrencySent,
		CurrencyReceived: quote.CurrencyReceived,
		ExchangeRate:     quote.ExchangeRate,
		Fee:              quote.Fee,
		Purpose:          req.Purpose,

		Status:          domain.RemittancePending,
		ExemptionStatus: domain.ExemptionNone,

		SourceOfFundsVerified: req.SourceOfFundsVerified,
		RecipientVerified:     req.RecipientVerified,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.remittanceRepo.SaveRemittance(ctx, remittance); err != nil {
		return nil, fmt.Errorf("failed to create remittance in service: %w", err)
	}

	s.LogInfo(ctx, "Remittance created",
		"remittance_id", remittance.RemittanceID,
		"reference_number", remittance.ReferenceNumber,
		"amount_sent", remittance.AmountSent.String(),
		"currency_received", remittance.CurrencyReceived,
		"requires_reporting", s.compliance.RequiresReporting(remittance.AmountSent))
	return &remittance, nil
}

// UpdateStatus moves a remittance along its lifecycle, enforcing the
// transition table. On reaching completed, a regulator report dispatch is
// fired in the background so payout flow is never blocked on the regulator.
func (s *RemittanceService) UpdateStatus(ctx context.Context, remittanceID string, status domain.RemittanceStatus, updaterUserID string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remittance for status update: %w", err)
	}

	if !remittance.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot transition remittance from '%s' to '%s'",
			apperrors.ErrValidation, remittance.Status, status)
	}

	if err := s.remittanceRepo.UpdateStatus(ctx, remittanceID, status, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to update remittance status: %w", err)
	}

	s.LogInfo(ctx, "Remittance status updated",
		"remittance_id", remittanceID, "from", string(remittance.Status), "to", string(status))

	if status == domain.RemittanceCompleted {
		s.dispatchReportAsync(ctx, remittanceID)
	}

	remittance.Status = status
	remittance.LastUpdatedAt = s.now()
	remittance.LastUpdatedBy = updaterUserID
	return remittance, nil
}

// dispatchReportAsync fires the on-demand report in a goroutine with its own
// deadline, detached from the request context so the response returning does
// not cancel the dispatch. Failures are recorded on the remittance and picked
// up by reconciliation, so a lost dispatch is never a lost report.
func (s *RemittanceService) dispatchReportAsync(ctx context.Context, remittanceID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), onDemandReportTimeout)
		defer cancel()
		bgCtx = middleware.ContextWithLogger(bgCtx, logger)

		outcome, err := s.reporting.ReportRemittance(bgCtx, remittanceID)
		if err != nil {
			s.LogError(bgCtx, err, "On-demand report dispatch failed", "remittance_id", remittanceID)
			return
		}
		s.LogInfo(bgCtx, "On-demand report dispatch finished",
			"remittance_id", remittanceID, "outcome", string(outcome.Kind))
	}()
}

// GetRemittanceByID retrieves a remittance by its ID.
func (s *RemittanceService) GetRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get remittance in service: %w", err)
	}
	return remittance, nil
}

// GetRemittanceByReference retrieves a remittance by its reference number.
func (s *RemittanceService) GetRemittanceByReference(ctx context.Context, referenceNumber string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByReference(ctx, referenceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get remittance by reference in service: %w", err)
	}
	return remittance, nil
}

// ListRemittances retrieves remittances with an optional status filter.
func (s *RemittanceService) ListRemittances(ctx context.Context, status *domain.RemittanceStatus, page, pageSize int) ([]domain.Remittance, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	remittances, total, err := s.remittanceRepo.ListRemittances(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list remittances in service: %w", err)
	}
	return remittances, total, nil
}
