package service

import (
	"fmt"
	"time"

	"github.com/anadolusms/smspanel/internal/models"
)

// ValidationError marks input the caller can fix; no side effect has
// happened when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// SendInput is one bulk-send request after transport-level decoding.
type SendInput struct {
	Title      string
	Text       string
	Recipients []string
}

// SendResult reports the outcome of a send back to the caller.
type SendResult struct {
	CampaignID     string   `json:"campaign_id"`
	Status         string   `json:"status"`
	TotalInput     int      `json:"total_input"`
	ValidSent      int      `json:"valid_sent"`
	InvalidNumbers []string `json:"invalid_numbers"`
	CreditsUsed    int64    `json:"credits_used"`
	Balance        int64    `json:"balance"`
	ReportID       string   `json:"report_id,omitempty"`
	ResultCode     int      `json:"result_code,omitempty"`
	Details        string   `json:"details,omitempty"`
}

// CostEstimate previews the charge for a submission without touching state.
type CostEstimate struct {
	MessageLength   int    `json:"message_length"`
	TotalRecipients int    `json:"total_recipients"`
	ValidRecipients int    `json:"valid_recipients"`
	InvalidCount    int    `json:"invalid_count"`
	Credits         int64  `json:"credits"`
	Strategy        string `json:"strategy"`
}

type BalanceInfo struct {
	Balance            int64                       `json:"balance"`
	RecentTransactions []*models.LedgerTransaction `json:"recent_transactions"`
}

type CampaignDetail struct {
	Campaign *models.Campaign  `json:"campaign"`
	Messages []*models.Message `json:"messages"`
}

type CampaignList struct {
	Campaigns  []*models.Campaign `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitHalfOpen CircuitBreakerState = "half-open"
	CircuitOpen     CircuitBreakerState = "open"
)

type ComponentStatus string

const (
	StatusConnected    ComponentStatus = "connected"
	StatusDisconnected ComponentStatus = "disconnected"
)

type OverallStatus string

const (
	StatusHealthy   OverallStatus = "healthy"
	StatusDegraded  OverallStatus = "degraded"
	StatusUnhealthy OverallStatus = "unhealthy"
)

type HealthStatus struct {
	Status               OverallStatus       `json:"status"`
	SchedulerRunning     bool                `json:"scheduler_running"`
	DatabaseStatus       ComponentStatus     `json:"database_status"`
	RedisStatus          ComponentStatus     `json:"redis_status"`
	CircuitBreakerState  CircuitBreakerState `json:"circuit_breaker_state"`
	CircuitBreakerStatus string              `json:"circuit_breaker_status,omitempty"`
	Timestamp            time.Time           `json:"timestamp"`
}
