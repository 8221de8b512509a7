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

// messageInsertChunk bounds the parameter count of a single bulk INSERT;
// Postgres caps bind parameters at 65535.
const messageInsertChunk = 1000

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// Create persists the campaign and all of its messages in one transaction.
func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign, messages []*models.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	campaignQuery := `
		INSERT INTO campaigns (
			id, tenant_id, title, message_text, total_recipients,
			successful_sends, failed_sends, credits_charged, status,
			operator_counts, created_at, updated_at
		)
		VALUES (:id, :tenant_id, :title, :message_text, :total_recipients,
		        :successful_sends, :failed_sends, :credits_charged, :status,
		        :operator_counts, :created_at, :updated_at)
	`

	if _, err := tx.NamedExecContext(ctx, campaignQuery, campaign); err != nil {
		return fmt.Errorf("failed to insert campaign: %w", err)
	}

	messageQuery := `
		INSERT INTO messages (campaign_id, phone_number, status, cost, error, created_at, updated_at)
		VALUES (:campaign_id, :phone_number, :status, :cost, :error, :created_at, :updated_at)
	`

	for start := 0; start < len(messages); start += messageInsertChunk {
		end := start + messageInsertChunk
		if end > len(messages) {
			end = len(messages)
		}
		if _, err := tx.NamedExecContext(ctx, messageQuery, messages[start:end]); err != nil {
			return fmt.Errorf("failed to insert messages: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit campaign: %w", err)
	}

	return nil
}

const campaignColumns = `
	id, tenant_id, title, message_text, total_recipients, successful_sends,
	failed_sends, credits_charged, status, report_id, last_report_check,
	delivered_count, failed_count, invalid_count, blocked_count,
	operator_counts, created_at, updated_at
`

// GetByID retrieves a campaign by id regardless of owner.
func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var campaign models.Campaign
	err := r.db.GetContext(ctx, &campaign, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// GetForTenant retrieves a campaign only if the tenant owns it.
func (r *campaignRepository) GetForTenant(ctx context.Context, tenantID int64, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND tenant_id = $2`

	var campaign models.Campaign
	err := r.db.GetContext(ctx, &campaign, query, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// ListByTenant returns a page of the tenant's campaigns, newest first, with
// the total count for pagination. Empty status means all statuses.
func (r *campaignRepository) ListByTenant(ctx context.Context, tenantID int64, status models.CampaignStatus, offset, limit int) ([]*models.Campaign, int64, error) {
	listQuery := `SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	var campaigns []*models.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, listQuery, tenantID, string(status), limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE tenant_id = $1 AND ($2 = '' OR status = $2)`
	if err := r.db.GetContext(ctx, &total, countQuery, tenantID, string(status)); err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return campaigns, total, nil
}

// ListMessages returns all messages of a campaign, oldest first.
func (r *campaignRepository) ListMessages(ctx context.Context, campaignID string) ([]*models.Message, error) {
	query := `
		SELECT id, campaign_id, phone_number, status, cost, sent_at, delivered_at, error, created_at, updated_at
		FROM messages
		WHERE campaign_id = $1
		ORDER BY id ASC
	`

	var messages []*models.Message
	if err := r.db.SelectContext(ctx, &messages, query, campaignID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// RecordDispatchResult stamps the gateway report id and marks the dispatched
// (still pending) messages sent.
func (r *campaignRepository) RecordDispatchResult(ctx context.Context, campaignID, reportID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()

	var reportRef sql.NullString
	if reportID != "" {
		reportRef = sql.NullString{String: reportID, Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE campaigns
		SET report_id = $2, updated_at = $3
		WHERE id = $1
	`, campaignID, reportRef, now)
	if err != nil {
		return fmt.Errorf("failed to record dispatch result: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dispatch result update: %w", err)
	}
	if rows == 0 {
		return ErrCampaignNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE messages
		SET status = $2, sent_at = $3, updated_at = $3
		WHERE campaign_id = $1 AND status = $4
	`, campaignID, models.MessageStatusSent, now, models.MessageStatusPending); err != nil {
		return fmt.Errorf("failed to mark messages sent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dispatch result: %w", err)
	}

	return nil
}

// RecordDispatchFailure moves the campaign to failed and fails every message
// that never left.
func (r *campaignRepository) RecordDispatchFailure(ctx context.Context, campaignID, reason string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE campaigns
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, campaignID, models.CampaignStatusFailed, now)
	if err != nil {
		return fmt.Errorf("failed to record dispatch failure: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dispatch failure update: %w", err)
	}
	if rows == 0 {
		return ErrCampaignNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE messages
		SET status = $2, error = $3, updated_at = $4
		WHERE campaign_id = $1 AND status = $5
	`, campaignID, models.MessageStatusFailed, reason, now, models.MessageStatusPending); err != nil {
		return fmt.Errorf("failed to mark messages failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dispatch failure: %w", err)
	}

	return nil
}

// ApplyReconciliation overwrites the rollups with the latest snapshot. The
// snapshot is cumulative upstream, so replays are idempotent. Completion is
// decided inside the UPDATE so the read-evaluate-write is one atomic
// statement.
func (r *campaignRepository) ApplyReconciliation(ctx context.Context, campaignID string, snapshot *models.ReportSnapshot, threshold float64) (models.CampaignStatus, error) {
	operatorCounts := snapshot.Operators
	if operatorCounts == nil {
		operatorCounts = models.OperatorCounts{}
	}

	query := `
		UPDATE campaigns
		SET delivered_count = $2,
		    failed_count = $3,
		    invalid_count = $4,
		    blocked_count = $5,
		    operator_counts = $6,
		    last_report_check = $7,
		    updated_at = $7,
		    status = CASE
		        WHEN $2 + $3 + $4 + $5 >= GREATEST(1, FLOOR($8 * successful_sends))
		        THEN 'completed'
		        ELSE status
		    END
		WHERE id = $1 AND status = $9
		RETURNING status
	`

	var status models.CampaignStatus
	err := r.db.GetContext(ctx, &status, query,
		campaignID, snapshot.Delivered, snapshot.Failed, snapshot.Invalid, snapshot.Blocked,
		operatorCounts, time.Now(), threshold, models.CampaignStatusSending)
	if errors.Is(err, sql.ErrNoRows) {
		// Already terminal (or gone); report the current status unchanged.
		campaign, getErr := r.GetByID(ctx, campaignID)
		if getErr != nil {
			return "", getErr
		}
		return campaign.Status, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to apply reconciliation: %w", err)
	}

	return status, nil
}

// ListReconcilable selects the oldest campaigns still awaiting delivery
// reports within the sweep horizon.
func (r *campaignRepository) ListReconcilable(ctx context.Context, cutoff time.Time, limit int) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE status = $1 AND report_id IS NOT NULL AND created_at >= $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	var campaigns []*models.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, models.CampaignStatusSending, cutoff, limit); err != nil {
		return nil, fmt.Errorf("failed to list reconcilable campaigns: %w", err)
	}

	return campaigns, nil
}
