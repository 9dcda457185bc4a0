package dto

import "github.com/remitflow/remit_backend/internal/core/domain"

// ReportOutcomeResponse is the API shape of a dispatch attempt result.
type ReportOutcomeResponse struct {
	Kind       string `json:"kind"` // skipped | reported | failed
	SkipReason string `json:"skipReason,omitempty"`
	ReportID   string `json:"reportID,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ToReportOutcomeResponse converts a domain.ReportOutcome to its API shape.
func ToReportOutcomeResponse(o domain.ReportOutcome) ReportOutcomeResponse {
	resp := ReportOutcomeResponse{
		Kind:       string(o.Kind),
		SkipReason: string(o.SkipReason),
		ReportID:   o.ReportID,
	}
	if o.Err != nil {
		resp.Error = o.Err.Error()
	}
	return resp
}

// ReconciliationSummaryResponse is the API shape of one reconciliation pass.
type ReconciliationSummaryResponse struct {
	Scanned      int `json:"scanned"`
	Reported     int `json:"reported"`
	StillPending int `json:"stillPending"`
	StaleBacklog int `json:"staleBacklog"`
}

// ToReconciliationSummaryResponse converts a domain summary to its API shape.
func ToReconciliationSummaryResponse(s domain.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		Scanned:      s.Scanned,
		Reported:     s.Reported,
		StillPending: s.StillPending,
		StaleBacklog: s.StaleBacklog,
	}
}

// BacklogResponse lists unreported remittances needing attention.
type BacklogResponse struct {
	Remittances  []RemittanceResponse `json:"remittances"`
	StaleBacklog int                  `json:"staleBacklog"`
}
