package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/remitflow/remit_backend/internal/apperrors"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/dto"
	"github.com/remitflow/remit_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler exposes the operational reporting endpoints: on-demand
// dispatch, reconciliation trigger and backlog inspection. These are
// service-to-service operations, so the group rejects callers that did not
// authenticate with the service API key; a user JWT alone is not enough.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to regulator reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reporting := rg.Group("/reporting", middleware.RequireServiceAPIKey())
	{
		reporting.POST("/remittances/:id", h.reportRemittance)
		reporting.POST("/reconcile", h.reconcile)
		reporting.GET("/backlog", h.backlog)
	}
}

// reportRemittance godoc
// @Summary Dispatch one remittance report
// @Description Submits the remittance to the regulator. Skips (not errors) when reporting is disabled, the remittance is already reported, or it is below the threshold
// @Tags reporting
// @Produce  json
// @Param   id path string true "Remittance ID"
// @Success 200 {object} dto.ReportOutcomeResponse
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 500 {object} map[string]string "Dispatch failed"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reporting/remittances/{id} [post]
func (h *reportingHandler) reportRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("id")

	outcome, err := h.reportingService.ReportRemittance(c.Request.Context(), remittanceID)
	if err != nil {
		handleNotFoundOr500(c, logger, err, "Dispatch failed")
		return
	}

	// A Failed outcome is still HTTP 200: the dispatch ran, the submission
	// did not land, and the response body says exactly that.
	c.JSON(http.StatusOK, dto.ToReportOutcomeResponse(outcome))
}

// reconcile godoc
// @Summary Run a reconciliation pass now
// @Description Re-scans the trailing window for unreported remittances and re-attempts delivery
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.ReconciliationSummaryResponse
// @Failure 500 {object} map[string]string "Reconciliation failed"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reporting/reconcile [post]
func (h *reportingHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.ReconcileUnreported(c.Request.Context())
	if err != nil {
		logger.Error("Manual reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(summary))
}

// backlog godoc
// @Summary Inspect the unreported backlog
// @Description Lists unreported-but-reportable remittances in the window plus the stale count outside it
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.BacklogResponse
// @Failure 500 {object} map[string]string "Failed to load backlog"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reporting/backlog [get]
func (h *reportingHandler) backlog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	remittances, stale, err := h.reportingService.UnreportedBacklog(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load unreported backlog", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load backlog"})
		return
	}

	c.JSON(http.StatusOK, dto.BacklogResponse{
		Remittances:  dto.ToListRemittanceResponse(remittances),
		StaleBacklog: stale,
	})
}

// handleNotFoundOr500 maps repository not-found errors to 404 and everything
// else to 500.
func handleNotFoundOr500(c *gin.Context, logger *slog.Logger, err error, msg string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		return
	}
	logger.Error(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
