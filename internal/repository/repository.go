package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Expected domain failures callers branch on. Anything else out of this
// package is a storage fault and must propagate.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db       *sqlx.DB
	tenant   TenantRepository
	campaign CampaignRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:       db,
		tenant:   NewTenantRepository(db),
		campaign: NewCampaignRepository(db),
	}
}

// Tenant returns the tenant/ledger repository.
func (r *repositoryImpl) Tenant() TenantRepository {
	return r.tenant
}

// Campaign returns the campaign repository.
func (r *repositoryImpl) Campaign() CampaignRepository {
	return r.campaign
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
