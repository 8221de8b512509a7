package service

import (
	"context"

	"github.com/anadolusms/smspanel/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mocks.go -package=mocks

// DispatchService coordinates one bulk send: validation, cost, ledger debit,
// persistence and the single gateway dispatch attempt.
type DispatchService interface {
	// Send runs the dispatch pipeline. A gateway failure after the debit
	// returns both a partial result (campaign id, credits charged) and the
	// error, so callers can surface the charge next to the failure.
	Send(ctx context.Context, tenantID int64, input SendInput) (*SendResult, error)

	EstimateCost(text string, recipients []string) *CostEstimate
	GetBalance(ctx context.Context, tenantID int64) (*BalanceInfo, error)
	GetCampaign(ctx context.Context, tenantID int64, campaignID string) (*CampaignDetail, error)
	ListCampaigns(ctx context.Context, tenantID int64, status models.CampaignStatus, page, limit int) (*CampaignList, error)
	GetCircuitBreakerStatus() (state CircuitBreakerState, requests, failures uint32)
}

// ReconcilerService polls the gateway for delivery reports and folds them
// into campaign rollups.
type ReconcilerService interface {
	// ScheduleFirstCheck arms the per-campaign timer chain after a
	// successful dispatch ack.
	ScheduleFirstCheck(campaignID string)

	// Sweep reconciles a bounded batch of the oldest pending campaigns.
	Sweep(ctx context.Context) error

	// ReconcileCampaign performs one best-effort reconciliation pass for a
	// single campaign and returns its fresh state.
	ReconcileCampaign(ctx context.Context, campaignID string) (*models.Campaign, error)

	// Stop cancels all pending per-campaign timers.
	Stop()
}

// SchedulerService controls the background sweep loop.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// AdminService exposes operator-only tenant maintenance.
type AdminService interface {
	AddBalance(ctx context.Context, tenantID, amount int64, description string) (int64, error)
	UpdateSMSSettings(ctx context.Context, tenantID int64, smsTitle, smsAPIKey string) error
}

type HealthService interface {
	GetHealth() *HealthStatus
}
