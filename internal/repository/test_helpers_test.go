package repository_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anadolusms/smspanel/internal/models"
)

func insertTestTenant(db *sqlx.DB, email, apiKey string, balance int64) (int64, error) {
	return insertTestTenantWithRole(db, email, apiKey, balance, models.TenantRoleTenant, models.TenantStatusActive)
}

func insertTestTenantWithRole(db *sqlx.DB, email, apiKey string, balance int64, role models.TenantRole, status models.TenantStatus) (int64, error) {
	var id int64
	query := `
		INSERT INTO tenants (email, role, status, balance, api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := db.QueryRow(query, email, string(role), string(status), balance, apiKey, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test tenant: %w", err)
	}

	return id, nil
}

func insertTestCampaign(db *sqlx.DB, tenantID int64, status models.CampaignStatus, reportID *string, createdAt time.Time) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO campaigns (
			id, tenant_id, title, message_text, total_recipients,
			successful_sends, failed_sends, credits_charged, status,
			report_id, operator_counts, created_at, updated_at
		)
		VALUES ($1, $2, 'Bulk SMS', 'hello', 3, 3, 0, 3, $3, $4, '{}', $5, $5)
	`

	if _, err := db.Exec(query, id, tenantID, string(status), reportID, createdAt); err != nil {
		return "", fmt.Errorf("failed to insert test campaign: %w", err)
	}

	return id, nil
}

func testCampaign(tenantID int64, total, valid int) *models.Campaign {
	now := time.Now()
	return &models.Campaign{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Title:           "Bulk SMS",
		MessageText:     "hello world",
		TotalRecipients: total,
		SuccessfulSends: valid,
		FailedSends:     total - valid,
		CreditsCharged:  int64(total),
		Status:          models.CampaignStatusSending,
		OperatorCounts:  models.OperatorCounts{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func testMessages(campaignID string, numbers []string, invalid map[string]bool) []*models.Message {
	now := time.Now()
	messages := make([]*models.Message, 0, len(numbers))
	for _, number := range numbers {
		msg := &models.Message{
			CampaignID:  campaignID,
			PhoneNumber: number,
			Status:      models.MessageStatusPending,
			Cost:        1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if invalid[number] {
			msg.Status = models.MessageStatusFailed
		}
		messages = append(messages, msg)
	}
	return messages
}

func ptr(s string) *string {
	return &s
}
