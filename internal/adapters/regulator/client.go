// Package regulator implements the HTTP client for the regulator's reporting
// API. The endpoint is idempotent per reference number on the regulator side;
// this client only handles transport and response decoding.
package regulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	portssvc "github.com/remitflow/remit_backend/internal/core/ports/services"
	"github.com/remitflow/remit_backend/internal/platform/config"
)

const (
	singleReportPath = "/api/v1/reports/transactions"
	batchReportPath  = "/api/v1/reports/transactions/batch"
)

// Client submits regulator reports over HTTPS with bearer authentication.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption is a functional option for configuring the regulator client
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// NewClient creates a regulator API client. Per-request deadlines come from
// the caller's context, so no client-level timeout is set.
func NewClient(cfg *config.Config, options ...ClientOption) *Client {
	client := &Client{
		baseURL:    cfg.RegulatorAPIURL,
		apiKey:     cfg.RegulatorAPIKey,
		httpClient: &http.Client{},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

var _ portssvc.RegulatorClient = (*Client)(nil)

type singleReportResponse struct {
	ReportID string `json:"report_id"`
}

type batchReportResponse struct {
	ReportIDs map[string]string `json:"report_ids"`
	Errors    map[string]string `json:"errors"`
}

// SubmitReport POSTs one transaction report and returns the regulator's
// report ID. Any transport or non-2xx failure wraps apperrors.ErrTransport.
func (c *Client) SubmitReport(ctx context.Context, report *domain.RegulatorReport) (string, error) {
	body, err := c.post(ctx, singleReportPath, report)
	if err != nil {
		return "", err
	}

	var resp singleReportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: malformed regulator response: %v", apperrors.ErrTransport, err)
	}
	if resp.ReportID == "" {
		return "", fmt.Errorf("%w: regulator response missing report_id", apperrors.ErrTransport)
	}
	return resp.ReportID, nil
}

// SubmitBatch POSTs a batch report. Returns the per-reference report IDs for
// accepted items and the per-reference error messages for rejected ones; a
// reference absent from both maps was simply not acknowledged.
func (c *Client) SubmitBatch(ctx context.Context, batch *domain.RegulatorBatchReport) (map[string]string, map[string]string, error) {
	body, err := c.post(ctx, batchReportPath, batch)
	if err != nil {
		return nil, nil, err
	}

	var resp batchReportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed regulator batch response: %v", apperrors.ErrTransport, err)
	}
	if resp.ReportIDs == nil {
		resp.ReportIDs = map[string]string{}
	}
	if resp.Errors == nil {
		resp.Errors = map[string]string{}
	}
	return resp.ReportIDs, resp.Errors, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode regulator payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build regulator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		// Covers timeouts and connection failures.
		return nil, fmt.Errorf("%w: regulator request failed: %v", apperrors.ErrTransport, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read regulator response: %v", apperrors.ErrTransport, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: regulator returned status %d: %s", apperrors.ErrTransport, res.StatusCode, truncate(string(body), 256))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
