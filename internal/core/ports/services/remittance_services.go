package services

import (
	"context"

	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/dto"
)

// RemittanceReaderSvc defines read operations for remittances
type RemittanceReaderSvc interface {
	// GetRemittanceByID retrieves a remittance by its ID.
	GetRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error)

	// GetRemittanceByReference retrieves a remittance by its reference number.
	GetRemittanceByReference(ctx context.Context, referenceNumber string) (*domain.Remittance, error)

	// ListRemittances retrieves remittances with an optional status filter.
	ListRemittances(ctx context.Context, status *domain.RemittanceStatus, page, pageSize int) ([]domain.Remittance, int, error)
}

// RemittanceWriterSvc defines write operations for remittances
type RemittanceWriterSvc interface {
	// CreateRemittance quotes, snapshots and persists a new transfer in
	// status pending.
	CreateRemittance(ctx context.Context, req dto.CreateRemittanceRequest, creatorUserID string) (*domain.Remittance, error)

	// UpdateStatus moves a remittance along its lifecycle, enforcing the
	// transition table. Reaching completed triggers an on-demand regulator
	// report dispatch that never blocks the caller.
	UpdateStatus(ctx context.Context, remittanceID string, status domain.RemittanceStatus, updaterUserID string) (*domain.Remittance, error)
}

// RemittanceSvcFacade combines all remittance-related service interfaces
type RemittanceSvcFacade interface {
	RemittanceReaderSvc
	RemittanceWriterSvc
}

// ExemptionSvc drives the asynchronous exemption workflow.
type ExemptionSvc interface {
	// RequestExemption opens (or explicitly reopens) an exemption request,
	// moving the status to pending.
	RequestExemption(ctx context.Context, remittanceID string, requesterUserID string) (*domain.Remittance, error)

	// DecideExemption records a manual review decision. Only valid from
	// pending; decisions are terminal.
	DecideExemption(ctx context.Context, remittanceID string, decision domain.ExemptionStatus, approverUserID string) (*domain.Remittance, error)

	// ProcessPendingExemptions scans pending requests within the trailing
	// window and applies the auto-approval policy deterministically. Returns
	// the number of requests decided.
	ProcessPendingExemptions(ctx context.Context) (int, error)
}
