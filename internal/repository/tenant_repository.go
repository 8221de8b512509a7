package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/anadolusms/smspanel/internal/models"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{
		db: db,
	}
}

// GetByID retrieves a tenant by its id.
func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	query := `
		SELECT id, email, role, status, balance, api_key, sms_title, sms_api_key, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var tenant models.Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}

// GetByAPIKey resolves a tenant from its panel API key.
func (r *tenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Tenant, error) {
	query := `
		SELECT id, email, role, status, balance, api_key, sms_title, sms_api_key, created_at, updated_at
		FROM tenants
		WHERE api_key = $1
	`

	var tenant models.Tenant
	err := r.db.GetContext(ctx, &tenant, query, apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant by api key: %w", err)
	}

	return &tenant, nil
}

// Debit performs the atomic check-and-decrement. The conditional UPDATE
// takes a row lock on the tenant, so concurrent debits of the same tenant
// serialize and can never overdraw the balance.
func (r *tenantRepository) Debit(ctx context.Context, tenantID, amount int64, reason string, campaignID *string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE tenants
		SET balance = balance - $2,
		    updated_at = $3
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`

	var newBalance int64
	err = tx.GetContext(ctx, &newBalance, query, tenantID, amount, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		// Either the tenant does not exist or the balance is short.
		var exists bool
		if checkErr := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tenants WHERE id = $1)`, tenantID); checkErr != nil {
			return 0, fmt.Errorf("failed to check tenant existence: %w", checkErr)
		}
		if !exists {
			return 0, ErrTenantNotFound
		}
		return 0, ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to debit balance: %w", err)
	}

	if err := appendTransaction(ctx, tx, tenantID, models.DirectionDebit, amount, reason, campaignID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit debit: %w", err)
	}

	return newBalance, nil
}

// Credit increments the balance unconditionally.
func (r *tenantRepository) Credit(ctx context.Context, tenantID, amount int64, reason string, campaignID *string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE tenants
		SET balance = balance + $2,
		    updated_at = $3
		WHERE id = $1
		RETURNING balance
	`

	var newBalance int64
	err = tx.GetContext(ctx, &newBalance, query, tenantID, amount, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTenantNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", err)
	}

	if err := appendTransaction(ctx, tx, tenantID, models.DirectionCredit, amount, reason, campaignID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit credit: %w", err)
	}

	return newBalance, nil
}

func appendTransaction(ctx context.Context, tx *sqlx.Tx, tenantID int64, direction models.TransactionDirection, amount int64, reason string, campaignID *string) error {
	query := `
		INSERT INTO ledger_transactions (tenant_id, direction, amount, reason, campaign_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var campaignRef sql.NullString
	if campaignID != nil {
		campaignRef = sql.NullString{String: *campaignID, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, query, tenantID, direction, amount, reason, campaignRef, time.Now()); err != nil {
		return fmt.Errorf("failed to append ledger transaction: %w", err)
	}

	return nil
}

// ListTransactions returns the tenant's most recent ledger transactions.
func (r *tenantRepository) ListTransactions(ctx context.Context, tenantID int64, limit int) ([]*models.LedgerTransaction, error) {
	query := `
		SELECT id, tenant_id, direction, amount, reason, campaign_id, created_at
		FROM ledger_transactions
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var transactions []*models.LedgerTransaction
	if err := r.db.SelectContext(ctx, &transactions, query, tenantID, limit); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// UpdateSMSSettings stores the tenant's gateway sender label and API key.
func (r *tenantRepository) UpdateSMSSettings(ctx context.Context, tenantID int64, smsTitle, smsAPIKey string) error {
	query := `
		UPDATE tenants
		SET sms_title = $2,
		    sms_api_key = $3,
		    updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, tenantID, smsTitle, smsAPIKey, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update sms settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return ErrTenantNotFound
	}

	return nil
}
