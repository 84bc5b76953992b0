// Package sheety is the client for the spreadsheet backend used as an
// escalation log. The API is unauthenticated REST over sheet rows; a
// POST body wraps the row in a singular key derived from the sheet name.
package sheety

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/httpclient"
	"rental-gateway/internal/common/metrics"
)

const serviceName = "sheety"

type Client struct {
	baseURL        string
	callbackSheet  string
	callbackRowKey string
	offlineSheet   string
	offlineRowKey  string
	httpClient     *httpclient.Client
}

func NewClient(cfg config.SheetyConfig) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		callbackSheet:  cfg.CallbackSheet,
		callbackRowKey: cfg.CallbackRowKey,
		offlineSheet:   cfg.OfflineSheet,
		offlineRowKey:  cfg.OfflineRowKey,
		httpClient:     httpclient.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// Row is one spreadsheet row. Values are whatever the sheet holds;
// numbers decode as json.Number so ids survive round trips untouched.
type Row map[string]interface{}

// ListCallbacks fetches every row of the callback sheet.
func (c *Client) ListCallbacks(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+c.callbackSheet, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.execute(req)
	if err != nil {
		return nil, err
	}

	// The collection is keyed by the sheet name.
	var listing map[string][]Row
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&listing); err != nil {
		return nil, errors.NewUpstreamDecodeError(serviceName, err)
	}

	return listing[c.callbackSheet], nil
}

// AppendCallback appends a new row to the callback sheet.
func (c *Client) AppendCallback(ctx context.Context, row Row) (json.RawMessage, error) {
	return c.append(ctx, c.callbackSheet, c.callbackRowKey, row)
}

// AppendOfflineHour appends a new row to the offline-hours sheet.
func (c *Client) AppendOfflineHour(ctx context.Context, row Row) (json.RawMessage, error) {
	return c.append(ctx, c.offlineSheet, c.offlineRowKey, row)
}

func (c *Client) append(ctx context.Context, sheet, rowKey string, row Row) (json.RawMessage, error) {
	payload := map[string]interface{}{rowKey: row}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+sheet, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.execute(req)
}

func (c *Client) execute(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "error").Inc()
		return nil, errors.NewUpstreamCallError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "error").Inc()
		return nil, errors.NewUpstreamCallError(serviceName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "error").Inc()
		return nil, errors.NewUpstreamError(serviceName, resp.StatusCode, string(body))
	}

	metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "success").Inc()
	return body, nil
}
