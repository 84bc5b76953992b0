package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Upstreams: UpstreamsConfig{
			Rento:     RentoConfig{BaseURL: "https://rento.example.com"},
			Sheety:    SheetyConfig{BaseURL: "https://sheets.example.com/project"},
			Centercom: CentercomConfig{BaseURL: "https://centercom.example.com"},
		},
		Escalation: EscalationConfig{
			StartHour:         9,
			EndHour:           20,
			InboxBaseURL:      "https://inbox.example.com",
			DefaultRecipients: []int64{98143},
		},
	}
}

func TestEscalationConfig_RecipientsFor(t *testing.T) {
	cfg := EscalationConfig{
		DefaultRecipients: []int64{98143},
		CityRecipients: map[string][]int64{
			"bangalore": {1732788, 1237084, 98143},
		},
	}

	tests := []struct {
		name     string
		city     string
		expected []int64
	}{
		{"exact match", "bangalore", []int64{1732788, 1237084, 98143}},
		{"mixed case", "Bangalore", []int64{1732788, 1237084, 98143}},
		{"surrounding whitespace", "  bangalore \t", []int64{1732788, 1237084, 98143}},
		{"unknown city", "springfield", []int64{98143}},
		{"empty city", "", []int64{98143}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.RecipientsFor(tt.city))
		})
	}
}

func TestEscalationConfig_ChatURL(t *testing.T) {
	cfg := EscalationConfig{InboxBaseURL: "https://inbox.example.com/"}
	assert.Equal(t, "https://inbox.example.com/conv-17?status=bot&search=", cfg.ChatURL("conv-17"))
}

func TestApplyDefaults(t *testing.T) {
	cfg := validTestConfig()
	applyDefaults(cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30000, cfg.Server.ReadTimeout)
	assert.Equal(t, "bot9", cfg.Upstreams.Rento.ChatApp)
	assert.Equal(t, "opsCallback", cfg.Upstreams.Sheety.CallbackSheet)
	assert.Equal(t, "offlineHour", cfg.Upstreams.Sheety.OfflineRowKey)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validTestConfig()
	cfg.Server.Address = ":9999"
	cfg.Escalation.StartHour = 8
	cfg.Escalation.EndHour = 22

	applyDefaults(cfg)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, 8, cfg.Escalation.StartHour)
	assert.Equal(t, 22, cfg.Escalation.EndHour)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing rento base url", func(c *Config) { c.Upstreams.Rento.BaseURL = "" }},
		{"missing sheety base url", func(c *Config) { c.Upstreams.Sheety.BaseURL = "" }},
		{"missing centercom base url", func(c *Config) { c.Upstreams.Centercom.BaseURL = "" }},
		{"missing inbox base url", func(c *Config) { c.Escalation.InboxBaseURL = "" }},
		{"no default recipients", func(c *Config) { c.Escalation.DefaultRecipients = nil }},
		{"inverted hours window", func(c *Config) { c.Escalation.StartHour = 20; c.Escalation.EndHour = 9 }},
		{"end hour past midnight", func(c *Config) { c.Escalation.EndHour = 25 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("CENTERCOM_API_KEY", "key-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: test-gateway
upstreams:
  rento:
    base_url: https://rento.test
  sheety:
    base_url: https://sheety.test/project
  centercom:
    base_url: https://centercom.test
    api_key: ${CENTERCOM_API_KEY}
escalation:
  inbox_base_url: https://inbox.test
  default_recipients: [98143]
  city_recipients:
    pune: [1732815, 98143]
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test-gateway", cfg.App.Name)
	assert.Equal(t, "key-from-env", cfg.Upstreams.Centercom.APIKey)
	assert.Equal(t, []int64{1732815, 98143}, cfg.Escalation.CityRecipients["pune"])

	// Defaults fill everything the file left out.
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "bot9", cfg.Upstreams.Rento.ChatApp)
	assert.Equal(t, "opsCallback", cfg.Upstreams.Sheety.CallbackSheet)
	assert.Equal(t, 9, cfg.Escalation.StartHour)
	assert.Equal(t, 20, cfg.Escalation.EndHour)
}

func TestLoadFromFile_RejectsIncompleteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
upstreams:
  rento:
    base_url: https://rento.test
`), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
