package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// flexInt tolerates the gateway emitting numeric fields as either JSON
// numbers or quoted strings, which it does inconsistently across endpoints.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexString accepts both string and numeric JSON values, used for report
// identifiers which the gateway returns as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type dispatchRequest struct {
	APIKey       string   `json:"api_key"`
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	SentTo       []string `json:"sentto"`
	Report       int      `json:"report"`
	SMSLang      int      `json:"sms_lang"`
	ResponseType string   `json:"response_type"`
}

type dispatchResponse struct {
	Result        flexInt    `json:"result"`
	ResultCode    flexInt    `json:"result_code"`
	ResultMessage string     `json:"result_message"`
	ReportID      flexString `json:"rapor_id"`
	TotalNumbers  flexInt    `json:"total_mobile_num"`
	SMSCount      flexInt    `json:"number_of_sms"`
}

type reportResponse struct {
	Result           flexInt `json:"result"`
	Received         flexInt `json:"numbers_received"`
	NotReceived      flexInt `json:"numbers_not_received"`
	InvalidNumbers   flexInt `json:"invalid_numbers"`
	BlockedNumbers   flexInt `json:"blocked_numbers"`
	TurkcellNumbers  flexInt `json:"turkcell_numbers"`
	VodafoneNumbers  flexInt `json:"vodafone_numbers"`
	TurkTelekomCount flexInt `json:"turktelekom_numbers"`
}

// DispatchAck is the synchronous acknowledgement of a batched dispatch.
// ReportID may be empty: the gateway occasionally omits it even on success.
type DispatchAck struct {
	ReportID     string
	ResultCode   int
	TotalNumbers int
	SMSCount     int
}

// Credentials identify the sender towards the gateway. Zero values fall back
// to the configured process-wide defaults.
type Credentials struct {
	APIKey      string
	SenderTitle string
}
