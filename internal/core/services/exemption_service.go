package services

import (
	"context"
	"fmt"
	"time"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
)

// autoApprover is recorded as the approver on policy-driven decisions so audit
// trails distinguish them from manual review.
const autoApprover = "system:auto-approval"

// ExemptionService drives the asynchronous exemption workflow. Requests are
// decided either by the periodic policy sweep or by a manual reviewer;
// approved/rejected are terminal and only an explicit new request reopens.
type ExemptionService struct {
	BaseService
	remittanceRepo portsrepo.RemittanceRepositoryFacade
	compliance     portssvc.ComplianceSvc

	reviewWindow time.Duration
	now          func() time.Time
}

// NewExemptionService creates a new ExemptionService.
func NewExemptionService(cfg *config.Config, remittanceRepo portsrepo.RemittanceRepositoryFacade, compliance portssvc.ComplianceSvc) *ExemptionService {
	return &ExemptionService{
		remittanceRepo: remittanceRepo,
		compliance:     compliance,
		reviewWindow:   cfg.ReconciliationWindow,
		now:            time.Now,
	}
}

var _ portssvc.ExemptionSvc = (*ExemptionService)(nil)

// RequestExemption opens an exemption request on the remittance, moving the
// exemption status to pending. A decided request can be reopened, but only by
// this explicit call, never implicitly.
func (s *ExemptionService) RequestExemption(ctx context.Context, remittanceID string, requesterUserID string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remittance for exemption request: %w", err)
	}

	if remittance.ExemptionStatus == domain.ExemptionPending {
		return nil, fmt.Errorf("%w: exemption request already pending for remittance %s", apperrors.ErrDuplicate, remittanceID)
	}

	ok, err := s.remittanceRepo.UpdateExemptionStatus(ctx, remittanceID, remittance.ExemptionStatus, domain.ExemptionPending, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open exemption request: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: exemption status changed concurrently for remittance %s", apperrors.ErrDuplicate, remittanceID)
	}

	s.LogInfo(ctx, "Exemption requested",
		"remittance_id", remittanceID, "requested_by", requesterUserID, "previous_status", string(remittance.ExemptionStatus))
	return s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
}

// DecideExemption records a manual approve/reject decision. Valid only from
// pending; a decision taken concurrently elsewhere surfaces as a conflict.
func (s *ExemptionService) DecideExemption(ctx context.Context, remittanceID string, decision domain.ExemptionStatus, approverUserID string) (*domain.Remittance, error) {
	if decision != domain.ExemptionApproved && decision != domain.ExemptionRejected {
		return nil, fmt.Errorf("%w: exemption decision must be approved or rejected, got '%s'", apperrors.ErrValidation, decision)
	}

	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remittance for exemption decision: %w", err)
	}
	if remittance.ExemptionStatus != domain.ExemptionPending {
		return nil, fmt.Errorf("%w: no pending exemption request on remittance %s (status: %s)",
			apperrors.ErrValidation, remittanceID, remittance.ExemptionStatus)
	}

	ok, err := s.remittanceRepo.UpdateExemptionStatus(ctx, remittanceID, domain.ExemptionPending, decision, &approverUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to record exemption decision: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: exemption already decided for remittance %s", apperrors.ErrDuplicate, remittanceID)
	}

	s.LogInfo(ctx, "Exemption decided",
		"remittance_id", remittanceID, "decision", string(decision), "approver", approverUserID)
	return s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
}

// ProcessPendingExemptions sweeps pending requests within the trailing window
// and applies the auto-approval policy. The policy is deterministic, so
// re-running the sweep over the same rows decides nothing twice: anything the
// policy leaves pending stays pending for manual review.
func (s *ExemptionService) ProcessPendingExemptions(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.reviewWindow)

	pending, err := s.remittanceRepo.FindPendingExemptions(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to scan pending exemptions: %w", err)
	}

	decided := 0
	for i := range pending {
		r := &pending[i]
		verdict := s.compliance.EvaluateExemption(r)
		if verdict == domain.ExemptionPending {
			continue
		}

		approver := autoApprover
		ok, err := s.remittanceRepo.UpdateExemptionStatus(ctx, r.RemittanceID, domain.ExemptionPending, verdict, &approver)
		if err != nil {
			return decided, fmt.Errorf("failed to apply exemption policy to remittance %s: %w", r.RemittanceID, err)
		}
		if !ok {
			// A manual reviewer got there first.
			continue
		}
		decided++
		s.LogInfo(ctx, "Exemption auto-decided",
			"remittance_id", r.RemittanceID, "decision", string(verdict))
	}

	if len(pending) > 0 {
		s.LogInfo(ctx, "Pending exemption sweep completed",
			"scanned", len(pending), "decided", decided)
	}
	return decided, nil
}
