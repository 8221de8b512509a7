package handler

import (
	"encoding/json"
	"errors"
	"time"
)

// recipientList accepts both a single number and an array of numbers, since
// panel clients historically send either shape.
type recipientList []string

func (r *recipientList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = recipientList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("recipients must be a string or an array of strings")
	}
	*r = many
	return nil
}

type sendRequest struct {
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Recipients recipientList `json:"recipients"`
}

type calculateCostRequest struct {
	Message    string        `json:"message"`
	Recipients recipientList `json:"recipients"`
}

type addBalanceRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type smsSettingsRequest struct {
	SMSTitle  string `json:"sms_title"`
	SMSAPIKey string `json:"sms_api_key"`
}

type addBalanceResponse struct {
	TenantID   int64 `json:"tenant_id"`
	NewBalance int64 `json:"new_balance"`
}

type schedulerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
