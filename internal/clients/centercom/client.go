// Package centercom is the client for the platform's bulk
// email/notification endpoint. Auth is a static ApiKey header.
package centercom

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

const serviceName = "centercom"

type Client struct {
	baseURL    string
	apiKey     string
	emailType  string
	emailName  string
	httpClient *httpclient.Client
}

func NewClient(cfg config.CentercomConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		emailType:  cfg.EmailType,
		emailName:  cfg.EmailName,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// EmailVariables fills the email template for an escalation.
type EmailVariables struct {
	UserID           interface{} `json:"userId"`
	TicketID         interface{} `json:"ticketId"`
	Comment          string      `json:"comment"`
	LocationName     string      `json:"locationName"`
	RequestTypeLabel string      `json:"requestTypeLabel"`
}

type bulkEmailRequest struct {
	UserIDs        []int64        `json:"userIds"`
	Channels       []string       `json:"channels"`
	Type           string         `json:"type"`
	Name           string         `json:"name"`
	DuplicateCheck bool           `json:"duplicateCheck"`
	Variables      EmailVariables `json:"variables"`
}

// SendBulkEmail notifies the given platform user ids over the EMAIL
// channel. Template type and display name come from config.
func (c *Client) SendBulkEmail(ctx context.Context, userIDs []int64, vars EmailVariables) (json.RawMessage, error) {
	payload := bulkEmailRequest{
		UserIDs:        userIDs,
		Channels:       []string{"EMAIL"},
		Type:           c.emailType,
		Name:           c.emailName,
		DuplicateCheck: true,
		Variables:      vars,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/communications/key/send/bulk", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("ApiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

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
