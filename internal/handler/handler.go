// Package handler provides HTTP request handlers for the panel API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/middleware"
	"github.com/anadolusms/smspanel/internal/models"
	"github.com/anadolusms/smspanel/internal/repository"
	"github.com/anadolusms/smspanel/internal/scheduler"
	"github.com/anadolusms/smspanel/internal/service"
)

const (
	errorCodeValidation              = "VALIDATION_ERROR"
	errorCodeInsufficientFunds       = "INSUFFICIENT_FUNDS"
	errorCodeNotFound                = "NOT_FOUND"
	errorCodeSchedulerAlreadyRunning = "SCHEDULER_ALREADY_RUNNING"
	errorCodeSchedulerNotRunning     = "SCHEDULER_NOT_RUNNING"
)

const (
	errorMessageInsufficientFunds = "Insufficient credit balance for this submission"
	errorMessageCampaignNotFound  = "Campaign not found"
	errorMessageTenantNotFound    = "Tenant not found"
	errorMessageInvalidBody       = "Invalid request body"
	errorMessageInternal          = "An internal error occurred"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SendSMS handles one bulk submission for the authenticated tenant.
func (h *Handler) SendSMS(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.GetTenant(r.Context())

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	input := service.SendInput{
		Title:      req.Title,
		Text:       req.Message,
		Recipients: []string(req.Recipients),
	}

	result, err := h.service.Dispatch.Send(r.Context(), tenant.ID, input)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, validationErr.Reason)
		case errors.Is(err, repository.ErrInsufficientFunds):
			h.sendError(w, r, http.StatusPaymentRequired, errorCodeInsufficientFunds, errorMessageInsufficientFunds)
		case result != nil:
			// Dispatch failed after the charge. The partial result carries
			// the campaign id and the credits spent, so the client sees
			// both the failure and the charge.
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, result)
		default:
			requestID := middleware.GetRequestID(r.Context())
			h.logger.Error("Send failed",
				zap.String("request_id", requestID),
				zap.Int64("tenantID", tenant.ID),
				zap.Error(err))
			h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		}
		return
	}

	render.JSON(w, r, result)
}

// CalculateCost previews the charge for a submission without sending.
func (h *Handler) CalculateCost(w http.ResponseWriter, r *http.Request) {
	var req calculateCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	render.JSON(w, r, h.service.Dispatch.EstimateCost(req.Message, []string(req.Recipients)))
}

// GetBalance returns the tenant's credit balance with recent ledger activity.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.GetTenant(r.Context())

	info, err := h.service.Dispatch.GetBalance(r.Context(), tenant.ID)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to get balance",
			zap.String("request_id", requestID),
			zap.Int64("tenantID", tenant.ID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, info)
}

// ListCampaigns returns a page of the tenant's campaign history.
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.GetTenant(r.Context())

	page := 1
	limit := 20

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v >= 1 && v <= 100 {
		limit = v
	}

	status := models.CampaignStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.CampaignStatusSending, models.CampaignStatusCompleted, models.CampaignStatusFailed:
	default:
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "unknown campaign status filter")
		return
	}

	result, err := h.service.Dispatch.ListCampaigns(r.Context(), tenant.ID, status, page, limit)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to list campaigns",
			zap.String("request_id", requestID),
			zap.Int64("tenantID", tenant.ID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, result)
}

// GetCampaign returns one campaign with its per-recipient messages.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.GetTenant(r.Context())
	campaignID := chi.URLParam(r, "campaignId")

	detail, err := h.service.Dispatch.GetCampaign(r.Context(), tenant.ID, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, errorMessageCampaignNotFound)
			return
		}
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to get campaign",
			zap.String("request_id", requestID),
			zap.String("campaignID", campaignID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, detail)
}

// GetDeliveryReport runs an opportunistic reconciliation pass and returns the
// campaign's current rollups, so clients polling this endpoint always see the
// freshest counts the gateway will give.
func (h *Handler) GetDeliveryReport(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.GetTenant(r.Context())
	campaignID := chi.URLParam(r, "campaignId")

	// Ownership is verified before the reconciliation pass so a foreign
	// campaign id cannot trigger gateway traffic on another tenant's behalf.
	if tenant.Role != models.TenantRoleOperator {
		if _, err := h.service.Dispatch.GetCampaign(r.Context(), tenant.ID, campaignID); err != nil {
			if errors.Is(err, repository.ErrCampaignNotFound) {
				h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, errorMessageCampaignNotFound)
				return
			}
			requestID := middleware.GetRequestID(r.Context())
			h.logger.Error("Failed to load campaign for delivery report",
				zap.String("request_id", requestID),
				zap.String("campaignID", campaignID),
				zap.Error(err))
			h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
			return
		}
	}

	campaign, err := h.service.Reconciler.ReconcileCampaign(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, errorMessageCampaignNotFound)
			return
		}
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to reconcile campaign",
			zap.String("request_id", requestID),
			zap.String("campaignID", campaignID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, campaign)
}

// AddBalance credits a tenant's balance. Operator only.
func (h *Handler) AddBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantId"), 10, 64)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid tenant id")
		return
	}

	var req addBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	newBalance, err := h.service.Admin.AddBalance(r.Context(), tenantID, req.Amount, req.Description)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, validationErr.Reason)
		case errors.Is(err, repository.ErrTenantNotFound):
			h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, errorMessageTenantNotFound)
		default:
			requestID := middleware.GetRequestID(r.Context())
			h.logger.Error("Failed to add balance",
				zap.String("request_id", requestID),
				zap.Int64("tenantID", tenantID),
				zap.Error(err))
			h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		}
		return
	}

	render.JSON(w, r, addBalanceResponse{
		TenantID:   tenantID,
		NewBalance: newBalance,
	})
}

// UpdateSMSSettings sets a tenant's gateway credential override. Operator only.
func (h *Handler) UpdateSMSSettings(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantId"), 10, 64)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid tenant id")
		return
	}

	var req smsSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	if err := h.service.Admin.UpdateSMSSettings(r.Context(), tenantID, req.SMSTitle, req.SMSAPIKey); err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, validationErr.Reason)
		case errors.Is(err, repository.ErrTenantNotFound):
			h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, errorMessageTenantNotFound)
		default:
			requestID := middleware.GetRequestID(r.Context())
			h.logger.Error("Failed to update SMS settings",
				zap.String("request_id", requestID),
				zap.Int64("tenantID", tenantID),
				zap.Error(err))
			h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		}
		return
	}

	render.JSON(w, r, map[string]string{"status": "updated"})
}

// StartScheduler starts the background reconciliation sweep. Operator only.
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Scheduler.Start(); err != nil {
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerAlreadyRunning, "Scheduler is already running")
			return
		}
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to start scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, schedulerResponse{
		Status:  "started",
		Message: "Scheduler started successfully",
	})
}

// StopScheduler stops the background reconciliation sweep. Operator only.
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Scheduler.Stop(); err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerNotRunning, "Scheduler is not running")
			return
		}
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to stop scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
		return
	}

	render.JSON(w, r, schedulerResponse{
		Status:  "stopped",
		Message: "Scheduler stopped successfully",
	})
}

// HealthCheck reports component health. Unauthenticated.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	// Degraded still answers 200 so a tripped breaker is visible to
	// monitoring without taking the panel out of rotation.
	if health.Status == service.StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	render.JSON(w, r, health)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, errorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now(),
	})
}
