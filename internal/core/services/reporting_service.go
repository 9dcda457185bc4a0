package services

import (
	"context"
	"fmt"
	"time"

	"github.com/remitflow/remit_backend/internal/core/domain"
	portsrepo "github.com/remitflow/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

// reconcileBatchLimit bounds how many remittances one reconciliation pass
// submits; anything beyond waits for the next pass.
const reconcileBatchLimit = 100

// reportingService is the dispatcher: it delivers regulator reports with
// idempotent at-least-once semantics. Per remittance the effective states are
// NOT_DUE -> DUE -> SUBMITTING -> REPORTED, with failed submissions dropping
// back to DUE for the next reconciliation pass. REPORTED is terminal:
// reported_to_regulator only ever transitions false -> true.
type reportingService struct {
	BaseService
	remittanceRepo portsrepo.RemittanceRepositoryFacade
	builder        portssvc.ReportBuilderSvc
	compliance     portssvc.ComplianceSvc
	client         portssvc.RegulatorClient

	enabled              bool
	reportingThreshold   decimal.Decimal
	reconciliationWindow time.Duration
	reportTimeout        time.Duration
	batchReportTimeout   time.Duration
	now                  func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the dispatcher's clock.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates the reporting dispatcher with the provided options.
func NewReportingService(
	cfg *config.Config,
	remittanceRepo portsrepo.RemittanceRepositoryFacade,
	builder portssvc.ReportBuilderSvc,
	compliance portssvc.ComplianceSvc,
	client portssvc.RegulatorClient,
	options ...ReportingServiceOption,
) portssvc.ReportingSvc {
	svc := &reportingService{
		remittanceRepo:       remittanceRepo,
		builder:              builder,
		compliance:           compliance,
		client:               client,
		enabled:              cfg.ReportingEnabled,
		reportingThreshold:   cfg.ReportingThreshold,
		reconciliationWindow: cfg.ReconciliationWindow,
		reportTimeout:        cfg.ReportTimeout,
		batchReportTimeout:   cfg.BatchReportTimeout,
		now:                  time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// ReportRemittance dispatches a single remittance to the regulator.
// Short-circuit paths return Skipped outcomes before any payload is built or
// network call made; the already-reported check is the first line of defense
// for idempotency, independent of any idempotency the endpoint itself offers.
func (s *reportingService) ReportRemittance(ctx context.Context, remittanceID string) (domain.ReportOutcome, error) {
	if !s.enabled {
		return domain.Skipped(domain.SkipReportingDisabled), nil
	}

	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return domain.ReportOutcome{}, fmt.Errorf("failed to load remittance for reporting: %w", err)
	}

	if remittance.ReportedToRegulator {
		return domain.Skipped(domain.SkipAlreadyReported), nil
	}

	// Eligibility is evaluated here, at report time, against current policy.
	if !s.compliance.RequiresReporting(remittance.AmountSent) {
		return domain.Skipped(domain.SkipBelowThreshold), nil
	}

	payload, err := s.builder.BuildReportPayload(remittance)
	if err != nil {
		// Data problem: log, record, surface for manual remediation. Not a
		// transport failure, so blind retries will not fix it.
		s.LogError(ctx, err, "Failed to build regulator report payload",
			"remittance_id", remittanceID, "reference_number", remittance.ReferenceNumber)
		s.recordAttempt(ctx, remittanceID, err)
		return domain.FailedOutcome(err), nil
	}

	// No lock is held on the remittance row across this call; state is read
	// above and written below.
	submitCtx, cancel := context.WithTimeout(ctx, s.reportTimeout)
	defer cancel()
	reportID, err := s.client.SubmitReport(submitCtx, payload)
	if err != nil {
		s.LogWarn(ctx, "Regulator submission failed, remittance stays eligible for reconciliation",
			"remittance_id", remittanceID, "reference_number", remittance.ReferenceNumber, "error", err.Error())
		s.recordAttempt(ctx, remittanceID, err)
		return domain.FailedOutcome(err), nil
	}

	won, err := s.remittanceRepo.MarkReported(ctx, remittanceID, reportID)
	if err != nil {
		return domain.ReportOutcome{}, fmt.Errorf("failed to mark remittance reported: %w", err)
	}
	if !won {
		// A concurrent dispatch confirmed first; our submission was redundant
		// but harmless (the endpoint is idempotent per reference_number).
		s.LogInfo(ctx, "Lost mark-reported race, treating as already reported",
			"remittance_id", remittanceID)
		return domain.Skipped(domain.SkipAlreadyReported), nil
	}

	s.recordAttempt(ctx, remittanceID, nil)
	s.LogInfo(ctx, "Remittance reported to regulator",
		"remittance_id", remittanceID, "reference_number", remittance.ReferenceNumber, "report_id", reportID)
	return domain.Reported(reportID), nil
}

// ReportBatch dispatches the given remittances in one submission. Partial
// success is expected: exactly the reference numbers present in the response
// id-map are marked reported, the rest stay eligible for the next pass.
func (s *reportingService) ReportBatch(ctx context.Context, remittances []domain.Remittance) (domain.ReconciliationSummary, error) {
	if !s.enabled {
		// Nothing was scanned or attempted; an empty summary keeps the
		// reconciliation log honest.
		return domain.ReconciliationSummary{}, nil
	}
	summary := domain.ReconciliationSummary{Scanned: len(remittances)}

	// Filter to reportable-and-unreported; build payloads per item so one
	// incomplete remittance does not block the rest of the batch.
	eligible := make([]domain.Remittance, 0, len(remittances))
	payloads := make([]*domain.Remittance, 0, len(remittances))
	for i := range remittances {
		r := &remittances[i]
		if r.ReportedToRegulator || !s.compliance.RequiresReporting(r.AmountSent) {
			continue
		}
		if _, err := s.builder.BuildReportPayload(r); err != nil {
			s.LogError(ctx, err, "Skipping remittance with incomplete report data",
				"remittance_id", r.RemittanceID, "reference_number", r.ReferenceNumber)
			s.recordAttempt(ctx, r.RemittanceID, err)
			summary.StillPending++
			continue
		}
		eligible = append(eligible, *r)
		payloads = append(payloads, r)
	}

	if len(eligible) == 0 {
		return summary, nil
	}

	batch, err := s.builder.BuildBatchPayload(payloads)
	if err != nil {
		// Items were individually validated above, so this is unexpected.
		return summary, fmt.Errorf("failed to build batch payload: %w", err)
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.batchReportTimeout)
	defer cancel()
	reportIDs, itemErrs, err := s.client.SubmitBatch(submitCtx, batch)
	if err != nil {
		// Total failure: nothing is marked, every item stays eligible and the
		// next reconciliation pass naturally retries.
		s.LogWarn(ctx, "Batch regulator submission failed",
			"batch_id", batch.BatchID, "count", len(eligible), "error", err.Error())
		for i := range eligible {
			s.recordAttempt(ctx, eligible[i].RemittanceID, err)
		}
		summary.StillPending += len(eligible)
		return summary, nil
	}

	for i := range eligible {
		r := &eligible[i]
		reportID, ok := reportIDs[r.ReferenceNumber]
		if !ok {
			itemErr := fmt.Errorf("reference %s not acknowledged in batch response", r.ReferenceNumber)
			if msg, has := itemErrs[r.ReferenceNumber]; has {
				itemErr = fmt.Errorf("regulator rejected %s: %s", r.ReferenceNumber, msg)
			}
			s.LogWarn(ctx, "Batch item not confirmed, stays eligible for reconciliation",
				"remittance_id", r.RemittanceID, "reference_number", r.ReferenceNumber, "error", itemErr.Error())
			s.recordAttempt(ctx, r.RemittanceID, itemErr)
			summary.StillPending++
			continue
		}

		won, err := s.remittanceRepo.MarkReported(ctx, r.RemittanceID, reportID)
		if err != nil {
			return summary, fmt.Errorf("failed to mark remittance %s reported: %w", r.RemittanceID, err)
		}
		if won {
			s.recordAttempt(ctx, r.RemittanceID, nil)
			summary.Reported++
		}
	}

	s.LogInfo(ctx, "Batch report completed",
		"batch_id", batch.BatchID, "submitted", len(eligible),
		"reported", summary.Reported, "still_pending", summary.StillPending)
	return summary, nil
}

// ReconcileUnreported re-scans the trailing window for remittances that should
// have been reported but were never confirmed and re-attempts delivery. The
// window bounds reprocessing; older stuck rows are surfaced, not retried.
func (s *reportingService) ReconcileUnreported(ctx context.Context) (domain.ReconciliationSummary, error) {
	if !s.enabled {
		return domain.ReconciliationSummary{}, nil
	}

	cutoff := s.now().Add(-s.reconciliationWindow)

	stale, err := s.remittanceRepo.CountStaleUnreported(ctx, cutoff, s.reportingThreshold)
	if err != nil {
		return domain.ReconciliationSummary{}, fmt.Errorf("failed to count stale unreported remittances: %w", err)
	}
	if stale > 0 {
		s.LogWarn(ctx, "Unreported remittances older than the reconciliation window need manual intervention",
			"count", stale, "window", s.reconciliationWindow.String())
	}

	backlog, err := s.remittanceRepo.FindUnreported(ctx, cutoff, s.reportingThreshold, reconcileBatchLimit)
	if err != nil {
		return domain.ReconciliationSummary{}, fmt.Errorf("failed to scan unreported backlog: %w", err)
	}

	summary, err := s.ReportBatch(ctx, backlog)
	if err != nil {
		return summary, err
	}
	summary.StaleBacklog = stale
	return summary, nil
}

// UnreportedBacklog lists the currently eligible unreported remittances plus
// the stale count for operator visibility.
func (s *reportingService) UnreportedBacklog(ctx context.Context) ([]domain.Remittance, int, error) {
	cutoff := s.now().Add(-s.reconciliationWindow)
	backlog, err := s.remittanceRepo.FindUnreported(ctx, cutoff, s.reportingThreshold, reconcileBatchLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list unreported backlog: %w", err)
	}
	stale, err := s.remittanceRepo.CountStaleUnreported(ctx, cutoff, s.reportingThreshold)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stale unreported remittances: %w", err)
	}
	return backlog, stale, nil
}

// recordAttempt persists the attempt counter and last error; failures here
// must not mask the submission outcome, so they are only logged.
func (s *reportingService) recordAttempt(ctx context.Context, remittanceID string, attemptErr error) {
	var errText *string
	if attemptErr != nil {
		msg := attemptErr.Error()
		errText = &msg
	}
	if err := s.remittanceRepo.RecordReportAttempt(ctx, remittanceID, s.now(), errText); err != nil {
		s.LogError(ctx, err, "Failed to record report attempt", "remittance_id", remittanceID)
	}
}
