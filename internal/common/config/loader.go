// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like UPSTREAMS_RENTO_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from the places the service is started from.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the
// yaml left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Upstreams.Centercom.APIKey == "" {
		if val := os.Getenv("CENTERCOM_API_KEY"); val != "" {
			cfg.Upstreams.Centercom.APIKey = val
		}
	}
	if cfg.Upstreams.Rento.BaseURL == "" {
		if val := os.Getenv("RENTO_BASE_URL"); val != "" {
			cfg.Upstreams.Rento.BaseURL = val
		}
	}
	if cfg.Upstreams.Sheety.BaseURL == "" {
		if val := os.Getenv("SHEETY_BASE_URL"); val != "" {
			cfg.Upstreams.Sheety.BaseURL = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}

	if cfg.Upstreams.Rento.Timeout == 0 {
		cfg.Upstreams.Rento.Timeout = 30000
	}
	if cfg.Upstreams.Rento.ChatApp == "" {
		cfg.Upstreams.Rento.ChatApp = "bot9"
	}
	if cfg.Upstreams.Sheety.Timeout == 0 {
		cfg.Upstreams.Sheety.Timeout = 30000
	}
	if cfg.Upstreams.Sheety.CallbackSheet == "" {
		cfg.Upstreams.Sheety.CallbackSheet = "opsCallback"
	}
	if cfg.Upstreams.Sheety.CallbackRowKey == "" {
		cfg.Upstreams.Sheety.CallbackRowKey = "opsCallback"
	}
	if cfg.Upstreams.Sheety.OfflineSheet == "" {
		cfg.Upstreams.Sheety.OfflineSheet = "offlineHours"
	}
	if cfg.Upstreams.Sheety.OfflineRowKey == "" {
		cfg.Upstreams.Sheety.OfflineRowKey = "offlineHour"
	}
	if cfg.Upstreams.Centercom.Timeout == 0 {
		cfg.Upstreams.Centercom.Timeout = 30000
	}

	if cfg.Escalation.StartHour == 0 && cfg.Escalation.EndHour == 0 {
		cfg.Escalation.StartHour = 9
		cfg.Escalation.EndHour = 20
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Upstreams.Rento.BaseURL == "" {
		return fmt.Errorf("upstreams.rento.base_url is required")
	}
	if cfg.Upstreams.Sheety.BaseURL == "" {
		return fmt.Errorf("upstreams.sheety.base_url is required")
	}
	if cfg.Upstreams.Centercom.BaseURL == "" {
		return fmt.Errorf("upstreams.centercom.base_url is required")
	}
	if cfg.Escalation.InboxBaseURL == "" {
		return fmt.Errorf("escalation.inbox_base_url is required")
	}
	if len(cfg.Escalation.DefaultRecipients) == 0 {
		return fmt.Errorf("escalation.default_recipients must not be empty")
	}
	if cfg.Escalation.StartHour < 0 || cfg.Escalation.EndHour > 24 || cfg.Escalation.StartHour >= cfg.Escalation.EndHour {
		return fmt.Errorf("escalation working hours window [%d, %d) is invalid", cfg.Escalation.StartHour, cfg.Escalation.EndHour)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
