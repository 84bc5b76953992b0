// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Upstreams  UpstreamsConfig  `mapstructure:"upstreams"`
	Escalation EscalationConfig `mapstructure:"escalation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// UpstreamsConfig holds settings for every external collaborator.
type UpstreamsConfig struct {
	Rento     RentoConfig     `mapstructure:"rento"`
	Sheety    SheetyConfig    `mapstructure:"sheety"`
	Centercom CentercomConfig `mapstructure:"centercom"`
}

// RentoConfig points at the rental platform's internal REST API.
// The caller's bearer token is forwarded per request; nothing here
// authenticates the gateway itself.
type RentoConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ChatApp string `mapstructure:"chat_app"` // value of the chat-app header
	Timeout int    `mapstructure:"timeout"`  // milliseconds
}

// SheetyConfig points at the spreadsheet backend. The POST body wraps
// a row in a singular key derived from the sheet name, so both names
// are configuration.
type SheetyConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	CallbackSheet  string `mapstructure:"callback_sheet"`
	CallbackRowKey string `mapstructure:"callback_row_key"`
	OfflineSheet   string `mapstructure:"offline_sheet"`
	OfflineRowKey  string `mapstructure:"offline_row_key"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
}

type CentercomConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	EmailType string `mapstructure:"email_type"`
	EmailName string `mapstructure:"email_name"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// EscalationConfig holds the working-hours window and the recipient
// routing table. Hours are IST, half-open [start, end).
type EscalationConfig struct {
	StartHour             int                `mapstructure:"start_hour"`
	EndHour               int                `mapstructure:"end_hour"`
	InboxBaseURL          string             `mapstructure:"inbox_base_url"`
	DefaultRecipients     []int64            `mapstructure:"default_recipients"`
	MarketplaceRecipients []int64            `mapstructure:"marketplace_recipients"`
	CityRecipients        map[string][]int64 `mapstructure:"city_recipients"`
}

// RecipientsFor resolves the notification recipient list for a city.
// The city is normalized (trim, lowercase) before lookup; unknown
// cities fall back to the default list.
func (e EscalationConfig) RecipientsFor(city string) []int64 {
	key := strings.ToLower(strings.TrimSpace(city))
	if ids, ok := e.CityRecipients[key]; ok && len(ids) > 0 {
		return ids
	}
	return e.DefaultRecipients
}

// ChatURL builds the assistant inbox deep link for a conversation.
func (e EscalationConfig) ChatURL(conversationID string) string {
	return fmt.Sprintf("%s/%s?status=bot&search=", strings.TrimRight(e.InboxBaseURL, "/"), conversationID)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
