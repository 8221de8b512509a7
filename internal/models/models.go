// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type TenantRole string

const (
	TenantRoleOperator TenantRole = "operator"
	TenantRoleTenant   TenantRole = "tenant"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is a sub-account with its own credit balance and gateway identity.
// Balance is mutated only through ledger transactions.
type Tenant struct {
	ID        int64          `db:"id" json:"id"`
	Email     string         `db:"email" json:"email"`
	Role      TenantRole     `db:"role" json:"role"`
	Status    TenantStatus   `db:"status" json:"status"`
	Balance   int64          `db:"balance" json:"balance"`
	APIKey    string         `db:"api_key" json:"-"`
	SMSTitle  sql.NullString `db:"sms_title" json:"sms_title,omitempty"`
	SMSAPIKey sql.NullString `db:"sms_api_key" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "credit"
	DirectionDebit  TransactionDirection = "debit"
)

// LedgerTransaction is an append-only record of a balance mutation.
type LedgerTransaction struct {
	ID         int64                `db:"id" json:"id"`
	TenantID   int64                `db:"tenant_id" json:"tenant_id"`
	Direction  TransactionDirection `db:"direction" json:"direction"`
	Amount     int64                `db:"amount" json:"amount"`
	Reason     string               `db:"reason" json:"reason"`
	CampaignID sql.NullString       `db:"campaign_id" json:"campaign_id,omitempty"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

type CampaignStatus string

const (
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusFailed    CampaignStatus = "failed"
)

// OperatorCounts holds the per-operator delivery breakdown from the gateway
// report. Stored as jsonb.
type OperatorCounts map[string]int

func (o OperatorCounts) Value() (driver.Value, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

func (o *OperatorCounts) Scan(src interface{}) error {
	if src == nil {
		*o = OperatorCounts{}
		return nil
	}

	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("operator counts: unexpected type %T", src)
	}

	return json.Unmarshal(b, o)
}

// Campaign is the aggregate root for one bulk send and its outcome rollups.
type Campaign struct {
	ID               string         `db:"id" json:"id"`
	TenantID         int64          `db:"tenant_id" json:"tenant_id"`
	Title            string         `db:"title" json:"title"`
	MessageText      string         `db:"message_text" json:"message_text"`
	TotalRecipients  int            `db:"total_recipients" json:"total_recipients"`
	SuccessfulSends  int            `db:"successful_sends" json:"successful_sends"`
	FailedSends      int            `db:"failed_sends" json:"failed_sends"`
	CreditsCharged   int64          `db:"credits_charged" json:"credits_charged"`
	Status           CampaignStatus `db:"status" json:"status"`
	ReportID         sql.NullString `db:"report_id" json:"report_id,omitempty"`
	LastReportCheck  sql.NullTime   `db:"last_report_check" json:"last_report_check,omitempty"`
	DeliveredCount   int            `db:"delivered_count" json:"delivered_count"`
	FailedCount      int            `db:"failed_count" json:"failed_count"`
	InvalidCount     int            `db:"invalid_count" json:"invalid_count"`
	BlockedCount     int            `db:"blocked_count" json:"blocked_count"`
	OperatorCounts   OperatorCounts `db:"operator_counts" json:"operator_counts"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// ReportedCount is the number of dispatched messages the gateway has reported
// an outcome for so far.
func (c *Campaign) ReportedCount() int {
	return c.DeliveredCount + c.FailedCount + c.InvalidCount + c.BlockedCount
}

// ReconciliationComplete reports whether enough delivery outcomes have
// arrived to consider the campaign final. The threshold tolerates a long
// tail of reports that never arrive.
func (c *Campaign) ReconciliationComplete(threshold float64) bool {
	required := int(threshold * float64(c.SuccessfulSends))
	if required < 1 {
		required = 1
	}
	return c.ReportedCount() >= required
}

type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

// Message is one per-recipient record within a campaign. A message with an
// invalid number format is created directly in failed status and never
// reaches the gateway; it still consumes one credit.
type Message struct {
	ID          int64          `db:"id" json:"id"`
	CampaignID  string         `db:"campaign_id" json:"campaign_id"`
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	Status      MessageStatus  `db:"status" json:"status"`
	Cost        int            `db:"cost" json:"cost"`
	SentAt      sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt sql.NullTime   `db:"delivered_at" json:"delivered_at,omitempty"`
	Error       sql.NullString `db:"error" json:"error,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// RecipientEntry is one submitted recipient after normalization, carrying
// its validity flag so callers can partition a batch without exceptions.
type RecipientEntry struct {
	Raw        string
	Normalized string
	Valid      bool
}

// ReportSnapshot is the cumulative delivery rollup fetched from the gateway.
type ReportSnapshot struct {
	Delivered int            `json:"delivered"`
	Failed    int            `json:"failed"`
	Invalid   int            `json:"invalid"`
	Blocked   int            `json:"blocked"`
	Operators OperatorCounts `json:"operators"`
}
