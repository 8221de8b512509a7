package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/config"
	"github.com/anadolusms/smspanel/internal/models"
)

const (
	dispatchEndpoint = "/api/v3/gruba-gonder/post/tek-metin-gonderimi"
	reportEndpoint   = "/api/v3/rapor/get"
)

// Client talks to the upstream SMS gateway. It holds no local state beyond
// HTTP clients; all persistence belongs to the callers.
type Client struct {
	cfg          config.GatewayConfig
	dispatchHTTP *http.Client
	reportHTTP   *http.Client
	logger       *zap.Logger
}

func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		dispatchHTTP: &http.Client{
			Timeout: time.Duration(cfg.DispatchTimeout) * time.Second,
		},
		reportHTTP: &http.Client{
			Timeout: time.Duration(cfg.ReportTimeout) * time.Second,
		},
		logger: logger,
	}
}

// Dispatch submits one batched send to the gateway. Exactly one attempt is
// made; retries are the caller's decision. Failures are classified via
// *Error so callers can distinguish auth, timeout, server, protocol and
// rejection outcomes.
func (c *Client) Dispatch(ctx context.Context, creds Credentials, text string, recipients []string) (*DispatchAck, error) {
	reqBody := dispatchRequest{
		APIKey:       c.apiKey(creds),
		Title:        c.senderTitle(creds),
		Text:         text,
		SentTo:       recipients,
		Report:       1,
		SMSLang:      c.cfg.SMSLang,
		ResponseType: "json",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, newError(KindProtocol, "failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+dispatchEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, newError(KindProtocol, "failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.dispatchHTTP.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, newError(KindAuth, "gateway refused credentials: status %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, newError(KindServer, "gateway returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, newError(KindProtocol, "unexpected status code %d", resp.StatusCode)
	}

	var body dispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, newError(KindProtocol, "failed to decode dispatch response: %v", err)
	}

	if body.Result != 1 {
		msg := body.ResultMessage
		if msg == "" {
			msg = fmt.Sprintf("result code %d", int(body.ResultCode))
		}
		return nil, newError(KindRejected, "%s", msg)
	}

	// A missing report id on success is a protocol oddity the gateway
	// exhibits under load; the send went through, so warn and carry on.
	if body.ReportID == "" {
		c.logger.Warn("Dispatch accepted without report id",
			zap.Int("recipients", len(recipients)))
	}

	return &DispatchAck{
		ReportID:     string(body.ReportID),
		ResultCode:   int(body.ResultCode),
		TotalNumbers: int(body.TotalNumbers),
		SMSCount:     int(body.SMSCount),
	}, nil
}

// FetchReport retrieves the cumulative delivery rollup for a report id.
// Reconciliation is best-effort: callers treat any returned error as "no
// update this cycle" and never abort the polling loop on it.
func (c *Client) FetchReport(ctx context.Context, apiKey, reportID string) (*models.ReportSnapshot, error) {
	if apiKey == "" {
		apiKey = c.cfg.APIKey
	}

	endpoint := fmt.Sprintf("%s%s/%s", c.cfg.BaseURL, reportEndpoint, url.PathEscape(reportID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}

	q := req.URL.Query()
	q.Set("api_key", apiKey)
	q.Set("response_type", "json")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.reportHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report fetch failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report fetch returned status %d", resp.StatusCode)
	}

	var body reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode report response: %w", err)
	}

	return &models.ReportSnapshot{
		Delivered: int(body.Received),
		Failed:    int(body.NotReceived),
		Invalid:   int(body.InvalidNumbers),
		Blocked:   int(body.BlockedNumbers),
		Operators: models.OperatorCounts{
			"turkcell":    int(body.TurkcellNumbers),
			"vodafone":    int(body.VodafoneNumbers),
			"turktelekom": int(body.TurkTelekomCount),
		},
	}, nil
}

func (c *Client) apiKey(creds Credentials) string {
	if creds.APIKey != "" {
		return creds.APIKey
	}
	return c.cfg.APIKey
}

func (c *Client) senderTitle(creds Credentials) string {
	if creds.SenderTitle != "" {
		return creds.SenderTitle
	}
	return c.cfg.SenderTitle
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "dispatch timed out: %v", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, "dispatch timed out: %v", err)
	}

	return newError(KindServer, "gateway unreachable: %v", err)
}
