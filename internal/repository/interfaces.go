package repository

import (
	"context"
	"time"

	"github.com/anadolusms/smspanel/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/repository_mocks.go -package=mocks

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	// Tenant returns the tenant/ledger repository
	Tenant() TenantRepository

	// Campaign returns the campaign repository
	Campaign() CampaignRepository
}

// TenantRepository owns tenant rows and the credit ledger. Balance is never
// written outside Debit and Credit.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Tenant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Tenant, error)

	// Debit atomically checks and decrements the balance and appends the
	// ledger transaction in the same database transaction. Returns the new
	// balance, or ErrInsufficientFunds with no partial effect.
	Debit(ctx context.Context, tenantID, amount int64, reason string, campaignID *string) (int64, error)

	// Credit unconditionally increments the balance and appends the ledger
	// transaction. Returns the new balance.
	Credit(ctx context.Context, tenantID, amount int64, reason string, campaignID *string) (int64, error)

	ListTransactions(ctx context.Context, tenantID int64, limit int) ([]*models.LedgerTransaction, error)
	UpdateSMSSettings(ctx context.Context, tenantID int64, smsTitle, smsAPIKey string) error
}

// CampaignRepository owns campaigns and their messages.
type CampaignRepository interface {
	// Create persists the campaign and all its messages as one unit.
	Create(ctx context.Context, campaign *models.Campaign, messages []*models.Message) error

	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	GetForTenant(ctx context.Context, tenantID int64, id string) (*models.Campaign, error)
	ListByTenant(ctx context.Context, tenantID int64, status models.CampaignStatus, offset, limit int) ([]*models.Campaign, int64, error)
	ListMessages(ctx context.Context, campaignID string) ([]*models.Message, error)

	// RecordDispatchResult stamps the report id and marks all pending
	// messages sent; the campaign stays in sending until reconciled.
	RecordDispatchResult(ctx context.Context, campaignID, reportID string) error

	// RecordDispatchFailure moves the campaign to failed and marks all
	// still-pending messages failed with the given reason.
	RecordDispatchFailure(ctx context.Context, campaignID, reason string) error

	// ApplyReconciliation overwrites the rollup counts with the latest
	// snapshot, stamps the check time, and promotes the campaign to
	// completed once the reported share reaches the threshold. Returns the
	// resulting status.
	ApplyReconciliation(ctx context.Context, campaignID string, snapshot *models.ReportSnapshot, threshold float64) (models.CampaignStatus, error)

	// ListReconcilable returns up to limit oldest-first campaigns still in
	// sending status with a report id, created after the cutoff.
	ListReconcilable(ctx context.Context, cutoff time.Time, limit int) ([]*models.Campaign, error)
}
