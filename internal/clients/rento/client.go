// Package rento is the client for the rental platform's internal REST
// API. Every call forwards the caller-supplied bearer token; the
// gateway holds no credentials of its own for this upstream.
package rento

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/httpclient"
	"rental-gateway/internal/common/metrics"
)

const serviceName = "rento"

type Client struct {
	baseURL    string
	chatApp    string
	httpClient *httpclient.Client
}

func NewClient(cfg config.RentoConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		chatApp:    cfg.ChatApp,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// BaseURL is exposed for building caller-facing links (invoice URLs).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Billing ---

func (c *Client) DashboardData(ctx context.Context, token string) (*Dashboard, error) {
	var out Dashboard
	if err := c.getJSON(ctx, token, "/api/Dashboards/dashboardData", false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PendingRentalItemsBreakUp(ctx context.Context, token, userID string) (json.RawMessage, error) {
	path := "/api/RMUsers/getPendingRentalItemsBreakUp?userId=" + url.QueryEscape(userID)
	return c.getRaw(ctx, token, path, false)
}

func (c *Client) LedgersData(ctx context.Context, token string) (*Ledgers, error) {
	var out Ledgers
	if err := c.getJSON(ctx, token, "/api/Dashboards/getLedgersData", false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserLedgerInvoice(ctx context.Context, token, userID, invoiceID string) (*UserInvoice, error) {
	path := fmt.Sprintf("/api/RMUsers/%s/getUserLedgerInvoice?invoiceId=%s&discardGstInvoiceDateCheck=true",
		url.PathEscape(userID), url.QueryEscape(invoiceID))
	var out UserInvoice
	if err := c.getJSON(ctx, token, path, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Service requests ---

func (c *Client) ServiceRequests(ctx context.Context, token string) (*ServiceRequestsPage, error) {
	path := "/api/Dashboards/getServiceRequest?query=" +
		url.QueryEscape(`{"page":1,"size":100}`) + "&activeStatus=active"
	var out ServiceRequestsPage
	if err := c.getJSON(ctx, token, path, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CssSlots(ctx context.Context, token string, data map[string]interface{}) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/ServiceRequests/getCssSlots", true, map[string]interface{}{"data": data})
}

func (c *Client) BookCssSlot(ctx context.Context, token string, data map[string]interface{}) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/ServiceRequests/bookCssSlot", true, map[string]interface{}{"data": data})
}

func (c *Client) RescheduleTicket(ctx context.Context, token string, data map[string]interface{}) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/ServiceRequests/cssRescheduleTicket", true, map[string]interface{}{"data": data})
}

func (c *Client) UploadImages(ctx context.Context, token string, imageURLs []string) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/ServiceRequestImages/urlUpload", false, map[string]interface{}{
		"imageUrls": imageURLs,
	})
}

// NewTicket is the single-entry payload for ticket creation. The
// upstream accepts a batch; the gateway always sends one.
type NewTicket struct {
	RequestType int             `json:"requestType"`
	Images      json.RawMessage `json:"images"`
	OrderItemID int64           `json:"orderItemId"`
	Message     string          `json:"message"`
}

func (c *Client) CreateTickets(ctx context.Context, token string, ticket NewTicket) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/Dashboards/createNewTickets", false, map[string]interface{}{
		"data": []NewTicket{ticket},
	})
}

// CancelRequest forwards the id exactly as the caller sent it; the
// upstream accepts either numeric or text ids.
func (c *Client) CancelRequest(ctx context.Context, token string, serviceRequestID interface{}) (json.RawMessage, error) {
	return c.postRaw(ctx, token, "/api/ServiceRequests/cancelRequest", false, map[string]interface{}{
		"serviceRequestId": serviceRequestID,
	})
}

func (c *Client) KYCCompletionStatus(ctx context.Context, token string) (*KYCStatus, error) {
	body, err := c.getRaw(ctx, token, "/api/Hyperverges/completionStatusV3", false)
	if err != nil {
		return nil, err
	}
	var out KYCStatus
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.NewUpstreamDecodeError(serviceName, err)
	}
	return &out, nil
}

// --- Inventory ---

func (c *Client) ActiveProductList(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/api/Dashboards/activeProductList", false)
}

// --- Request plumbing ---

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, token string, chatApp bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("accept", "application/json, text/plain, */*")
	req.Header.Set("accept-language", "en-GB,en;q=0.9")
	req.Header.Set("authorization", token)
	if chatApp {
		req.Header.Set("chat-app", c.chatApp)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
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

func (c *Client) getRaw(ctx context.Context, token, path string, chatApp bool) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, token, chatApp)
	if err != nil {
		return nil, err
	}
	return c.execute(req)
}

func (c *Client) getJSON(ctx context.Context, token, path string, chatApp bool, out interface{}) error {
	body, err := c.getRaw(ctx, token, path, chatApp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewUpstreamDecodeError(serviceName, err)
	}
	return nil
}

func (c *Client) postRaw(ctx context.Context, token, path string, chatApp bool, payload interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewBuffer(jsonData), token, chatApp)
	if err != nil {
		return nil, err
	}
	return c.execute(req)
}
