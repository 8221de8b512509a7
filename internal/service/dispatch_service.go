package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/config"
	"github.com/anadolusms/smspanel/internal/gateway"
	"github.com/anadolusms/smspanel/internal/models"
	"github.com/anadolusms/smspanel/internal/phone"
	"github.com/anadolusms/smspanel/internal/pricing"
	"github.com/anadolusms/smspanel/internal/repository"
)

const (
	defaultCampaignTitle = "Bulk SMS"
	invalidNumberDetail  = "invalid number format"
	noValidRecipients    = "no valid recipients in submission"
)

type dispatchService struct {
	cfg            *config.Config
	repo           repository.Repository
	gateway        *gateway.Client
	pricing        pricing.Strategy
	reconciler     ReconcilerService
	circuitBreaker *CircuitBreaker
	logger         *zap.Logger
}

func NewDispatchService(
	cfg *config.Config,
	repo repository.Repository,
	gatewayClient *gateway.Client,
	pricingStrategy pricing.Strategy,
	reconciler ReconcilerService,
	logger *zap.Logger,
) DispatchService {
	cb := NewCircuitBreaker(&cfg.Gateway.CircuitBreaker, logger)

	return &dispatchService{
		cfg:            cfg,
		repo:           repo,
		gateway:        gatewayClient,
		pricing:        pricingStrategy,
		reconciler:     reconciler,
		circuitBreaker: cb,
		logger:         logger,
	}
}

// Send runs the dispatch pipeline: validate, partition, debit, persist,
// dispatch. The debit commits before the campaign is persisted, and both
// commit before the gateway sees the batch, so credits are never spent
// without a campaign record and no dispatched campaign exists without its
// reservation.
func (s *dispatchService) Send(ctx context.Context, tenantID int64, input SendInput) (*SendResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = defaultCampaignTitle
	}

	entries := partitionRecipients(input.Recipients)

	validCount := 0
	invalidNumbers := make([]string, 0)
	for _, entry := range entries {
		if entry.Valid {
			validCount++
		} else {
			invalidNumbers = append(invalidNumbers, entry.Raw)
		}
	}

	credits := s.pricing.RequiredCredits(len(entries), validCount, input.Text)

	campaignID := uuid.New().String()

	// Debit first. Fails closed on insufficient funds with nothing
	// persisted yet.
	reason := fmt.Sprintf("SMS dispatch of %d recipients", len(entries))
	newBalance, err := s.repo.Tenant().Debit(ctx, tenantID, credits, reason, &campaignID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &models.Campaign{
		ID:              campaignID,
		TenantID:        tenantID,
		Title:           title,
		MessageText:     input.Text,
		TotalRecipients: len(entries),
		SuccessfulSends: validCount,
		FailedSends:     len(entries) - validCount,
		CreditsCharged:  credits,
		Status:          models.CampaignStatusSending,
		OperatorCounts:  models.OperatorCounts{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	messages := make([]*models.Message, 0, len(entries))
	validRecipients := make([]string, 0, validCount)
	for _, entry := range entries {
		msg := &models.Message{
			CampaignID:  campaignID,
			PhoneNumber: entry.Normalized,
			Status:      models.MessageStatusPending,
			Cost:        1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if entry.Valid {
			validRecipients = append(validRecipients, entry.Normalized)
		} else {
			msg.Status = models.MessageStatusFailed
			msg.Error = sql.NullString{String: invalidNumberDetail, Valid: true}
		}
		messages = append(messages, msg)
	}

	if err := s.repo.Campaign().Create(ctx, campaign, messages); err != nil {
		// The debit is already committed; the ledger row references the
		// campaign id, so the charge stays auditable even here.
		return nil, fmt.Errorf("failed to persist campaign: %w", err)
	}

	result := &SendResult{
		CampaignID:     campaignID,
		Status:         string(models.CampaignStatusSending),
		TotalInput:     len(entries),
		ValidSent:      validCount,
		InvalidNumbers: invalidNumbers,
		CreditsUsed:    credits,
		Balance:        newBalance,
	}

	if validCount == 0 {
		// Charged for the submission volume, nothing to dispatch.
		if err := s.repo.Campaign().RecordDispatchFailure(ctx, campaignID, noValidRecipients); err != nil {
			return nil, fmt.Errorf("failed to record dispatch failure: %w", err)
		}
		result.Status = string(models.CampaignStatusFailed)
		result.Details = noValidRecipients

		s.logger.Info("Campaign failed before dispatch: no valid recipients",
			zap.String("campaignID", campaignID),
			zap.Int64("tenantID", tenantID),
			zap.Int("submitted", len(entries)))

		return result, nil
	}

	creds := s.tenantCredentials(ctx, tenantID)

	var ack *gateway.DispatchAck
	dispatchErr := s.circuitBreaker.Execute(ctx, func() error {
		var gwErr error
		ack, gwErr = s.gateway.Dispatch(ctx, creds, input.Text, validRecipients)
		return gwErr
	})

	if dispatchErr != nil {
		// Credits stay spent; the campaign record carries the failure so
		// the tenant sees the charge and the cause together.
		if recordErr := s.repo.Campaign().RecordDispatchFailure(ctx, campaignID, dispatchErr.Error()); recordErr != nil {
			s.logger.Error("Failed to record dispatch failure",
				zap.String("campaignID", campaignID),
				zap.Error(recordErr))
		}

		result.Status = string(models.CampaignStatusFailed)
		result.Details = dispatchErr.Error()

		s.logger.Error("Gateway dispatch failed",
			zap.String("campaignID", campaignID),
			zap.Int64("tenantID", tenantID),
			zap.Int("recipients", validCount),
			zap.String("circuitBreakerState", string(s.circuitBreaker.GetState())),
			zap.Error(dispatchErr))

		return result, dispatchErr
	}

	if err := s.repo.Campaign().RecordDispatchResult(ctx, campaignID, ack.ReportID); err != nil {
		return nil, fmt.Errorf("failed to record dispatch result: %w", err)
	}

	result.ReportID = ack.ReportID
	result.ResultCode = ack.ResultCode

	if ack.ReportID != "" {
		s.reconciler.ScheduleFirstCheck(campaignID)
	}

	s.logger.Info("Campaign dispatched",
		zap.String("campaignID", campaignID),
		zap.Int64("tenantID", tenantID),
		zap.Int("sent", validCount),
		zap.Int("invalid", len(invalidNumbers)),
		zap.Int64("credits", credits),
		zap.String("reportID", ack.ReportID))

	return result, nil
}

func (s *dispatchService) validateInput(input SendInput) error {
	if input.Text == "" {
		return validationErrorf("message text is required")
	}
	if length := utf8.RuneCountInString(input.Text); length > s.cfg.Send.MaxTextLength {
		return validationErrorf("message text exceeds %d characters (got %d)", s.cfg.Send.MaxTextLength, length)
	}
	if len(input.Recipients) == 0 {
		return validationErrorf("at least one recipient is required")
	}
	if len(input.Recipients) > s.cfg.Send.MaxRecipients {
		return validationErrorf("recipient list exceeds %d entries (got %d)", s.cfg.Send.MaxRecipients, len(input.Recipients))
	}
	return nil
}

// tenantCredentials resolves per-tenant gateway overrides; a lookup failure
// falls back to the configured defaults rather than failing the dispatch.
func (s *dispatchService) tenantCredentials(ctx context.Context, tenantID int64) gateway.Credentials {
	tenant, err := s.repo.Tenant().GetByID(ctx, tenantID)
	if err != nil {
		s.logger.Warn("Failed to load tenant gateway credentials, using defaults",
			zap.Int64("tenantID", tenantID),
			zap.Error(err))
		return gateway.Credentials{}
	}

	creds := gateway.Credentials{}
	if tenant.SMSAPIKey.Valid {
		creds.APIKey = tenant.SMSAPIKey.String
	}
	if tenant.SMSTitle.Valid {
		creds.SenderTitle = tenant.SMSTitle.String
	}
	return creds
}

// EstimateCost previews the charge without touching any state.
func (s *dispatchService) EstimateCost(text string, recipients []string) *CostEstimate {
	entries := partitionRecipients(recipients)

	validCount := 0
	for _, entry := range entries {
		if entry.Valid {
			validCount++
		}
	}

	return &CostEstimate{
		MessageLength:   utf8.RuneCountInString(text),
		TotalRecipients: len(entries),
		ValidRecipients: validCount,
		InvalidCount:    len(entries) - validCount,
		Credits:         s.pricing.RequiredCredits(len(entries), validCount, text),
		Strategy:        s.pricing.Name(),
	}
}

// GetBalance returns the tenant balance with recent ledger activity.
func (s *dispatchService) GetBalance(ctx context.Context, tenantID int64) (*BalanceInfo, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.Tenant().ListTransactions(ctx, tenantID, 10)
	if err != nil {
		return nil, err
	}

	return &BalanceInfo{
		Balance:            tenant.Balance,
		RecentTransactions: transactions,
	}, nil
}

// GetCampaign returns a campaign with its messages, scoped to the tenant.
func (s *dispatchService) GetCampaign(ctx context.Context, tenantID int64, campaignID string) (*CampaignDetail, error) {
	campaign, err := s.repo.Campaign().GetForTenant(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Campaign().ListMessages(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	return &CampaignDetail{
		Campaign: campaign,
		Messages: messages,
	}, nil
}

// ListCampaigns returns a page of the tenant's campaign history.
func (s *dispatchService) ListCampaigns(ctx context.Context, tenantID int64, status models.CampaignStatus, page, limit int) (*CampaignList, error) {
	offset := (page - 1) * limit

	campaigns, total, err := s.repo.Campaign().ListByTenant(ctx, tenantID, status, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &CampaignList{
		Campaigns: campaigns,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

func (s *dispatchService) GetCircuitBreakerStatus() (CircuitBreakerState, uint32, uint32) {
	state := s.circuitBreaker.GetState()
	requests, failures := s.circuitBreaker.GetCounts()
	return state, requests, failures
}

func partitionRecipients(recipients []string) []models.RecipientEntry {
	entries := make([]models.RecipientEntry, 0, len(recipients))
	for _, raw := range recipients {
		normalized := phone.Normalize(raw)
		entries = append(entries, models.RecipientEntry{
			Raw:        raw,
			Normalized: normalized,
			Valid:      phone.Valid(normalized),
		})
	}
	return entries
}
