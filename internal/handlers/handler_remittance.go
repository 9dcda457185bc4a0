package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/dto"
	"github.com/remitflow/remit_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// remittanceHandler handles HTTP requests for the remittance lifecycle,
// quoting and the exemption workflow.
type remittanceHandler struct {
	remittanceService portssvc.RemittanceSvcFacade
	conversionService portssvc.ConversionSvc
	exemptionService  portssvc.ExemptionSvc
}

// newRemittanceHandler creates a new remittanceHandler.
func newRemittanceHandler(rs portssvc.RemittanceSvcFacade, cs portssvc.ConversionSvc, es portssvc.ExemptionSvc) *remittanceHandler {
	return &remittanceHandler{
		remittanceService: rs,
		conversionService: cs,
		exemptionService:  es,
	}
}

// registerRemittanceRoutes registers routes related to remittances.
func registerRemittanceRoutes(rg *gin.RouterGroup, remittanceService portssvc.RemittanceSvcFacade, conversionService portssvc.ConversionSvc, exemptionService portssvc.ExemptionSvc) {
	h := newRemittanceHandler(remittanceService, conversionService, exemptionService)

	remittances := rg.Group("/remittances")
	{
		remittances.POST("", h.createRemittance)
		remittances.GET("", h.listRemittances)
		remittances.GET("/quote", h.quoteRemittance)
		remittances.GET("/:id", h.getRemittance)
		remittances.GET("/by-reference/:reference", h.getRemittanceByReference)
		remittances.PATCH("/:id/status", h.updateStatus)
		remittances.POST("/:id/exemption", h.requestExemption)
		remittances.POST("/:id/exemption/decision", h.decideExemption)
	}
}

// quoteRemittance godoc
// @Summary Quote a prospective transfer
// @Description Prices a transfer (conversion and fee) without creating it
// @Tags remittances
// @Produce  json
// @Param   amountSent query string true "Amount to send (base currency)"
// @Param   currencyReceived query string true "Receiving currency code"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No rate available for pair"
// @Failure 500 {object} map[string]string "Failed to quote"
// @Security BearerAuth
// @Router /remittances/quote [get]
func (h *remittanceHandler) quoteRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	quote, err := h.conversionService.QuoteRemittance(c.Request.Context(), req.AmountSent, req.CurrencyReceived)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to quote remittance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// createRemittance godoc
// @Summary Create a remittance
// @Description Quotes, snapshots and persists a new transfer in status pending
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   remittance body dto.CreateRemittanceRequest true "Remittance details"
// @Success 201 {object} dto.RemittanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "No rate available for pair"
// @Failure 500 {object} map[string]string "Failed to create remittance"
// @Security BearerAuth
// @Router /remittances [post]
func (h *remittanceHandler) createRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRemittance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	remittance, err := h.remittanceService.CreateRemittance(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create remittance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create remittance"})
		}
		return
	}

	logger.Info("Remittance created successfully",
		slog.String("remittance_id", remittance.RemittanceID),
		slog.String("reference_number", remittance.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToRemittanceResponse(remittance))
}

// getRemittance godoc
// @Summary Get a remittance by ID
// @Tags remittances
// @Produce  json
// @Param   id path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 500 {object} map[string]string "Failed to retrieve remittance"
// @Security BearerAuth
// @Router /remittances/{id} [get]
func (h *remittanceHandler) getRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("id")

	remittance, err := h.remittanceService.GetRemittanceByID(c.Request.Context(), remittanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		} else {
			logger.Error("Failed to get remittance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve remittance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// getRemittanceByReference godoc
// @Summary Get a remittance by reference number
// @Tags remittances
// @Produce  json
// @Param   reference path string true "Reference number"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 500 {object} map[string]string "Failed to retrieve remittance"
// @Security BearerAuth
// @Router /remittances/by-reference/{reference} [get]
func (h *remittanceHandler) getRemittanceByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	remittance, err := h.remittanceService.GetRemittanceByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		} else {
			logger.Error("Failed to get remittance by reference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve remittance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// listRemittances godoc
// @Summary List remittances
// @Description Retrieves remittances newest first with an optional status filter
// @Tags remittances
// @Produce  json
// @Param   status query string false "Filter by status" Enums(pending, processing, completed, failed, cancelled)
// @Param   page query int false "Page number (default 1)"
// @Param   pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListRemittancesResponse
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Failure 500 {object} map[string]string "Failed to list remittances"
// @Security BearerAuth
// @Router /remittances [get]
func (h *remittanceHandler) listRemittances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.RemittanceStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.RemittanceStatus(raw)
		switch s {
		case domain.RemittancePending, domain.RemittanceProcessing, domain.RemittanceCompleted,
			domain.RemittanceFailed, domain.RemittanceCancelled:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter: " + raw})
			return
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	remittances, total, err := h.remittanceService.ListRemittances(c.Request.Context(), status, page, pageSize)
	if err != nil {
		logger.Error("Failed to list remittances from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list remittances"})
		return
	}

	c.JSON(http.StatusOK, dto.ListRemittancesResponse{
		Remittances: dto.ToListRemittanceResponse(remittances),
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	})
}

// updateStatus godoc
// @Summary Update remittance status
// @Description Moves a remittance along its lifecycle; reaching completed triggers regulator reporting
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   id path string true "Remittance ID"
// @Param   status body dto.UpdateRemittanceStatusRequest true "Target status"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Security BearerAuth
// @Router /remittances/{id}/status [patch]
func (h *remittanceHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("id")

	var req dto.UpdateRemittanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	remittance, err := h.remittanceService.UpdateStatus(c.Request.Context(), remittanceID, domain.RemittanceStatus(req.Status), updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update remittance status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// requestExemption godoc
// @Summary Request a due-diligence exemption
// @Description Opens an exemption request on the remittance, moving it to pending review
// @Tags remittances
// @Produce  json
// @Param   id path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 409 {object} map[string]string "Exemption request already pending"
// @Failure 500 {object} map[string]string "Failed to request exemption"
// @Security BearerAuth
// @Router /remittances/{id}/exemption [post]
func (h *remittanceHandler) requestExemption(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("id")

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	remittance, err := h.exemptionService.RequestExemption(c.Request.Context(), remittanceID, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to request exemption", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request exemption"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// decideExemption godoc
// @Summary Record a manual exemption decision
// @Description Approves or rejects a pending exemption request; decisions are terminal
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   id path string true "Remittance ID"
// @Param   decision body dto.ExemptionDecisionRequest true "Decision"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 400 {object} map[string]string "Invalid decision or no pending request"
// @Failure 404 {object} map[string]string "Remittance not found"
// @Failure 409 {object} map[string]string "Exemption already decided"
// @Failure 500 {object} map[string]string "Failed to record decision"
// @Security BearerAuth
// @Router /remittances/{id}/exemption/decision [post]
func (h *remittanceHandler) decideExemption(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("id")

	var req dto.ExemptionDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	remittance, err := h.exemptionService.DecideExemption(c.Request.Context(), remittanceID, domain.ExemptionStatus(req.Decision), approverUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Remittance not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to decide exemption", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}
