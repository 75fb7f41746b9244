// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// applies environment overrides and defaults, and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	bindEnvKeys(v)
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys makes AutomaticEnv effective for keys absent from the YAML,
// e.g. WEBHOOK_URL with no config file at all.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.environment",
		"webhook.url", "webhook.timeout",
		"cache.enabled", "cache.address", "cache.password", "cache.db", "cache.ttl",
		"alerts.region", "alerts.sns.enabled", "alerts.sns.topic_arn",
		"alerts.ses.enabled", "alerts.ses.from_email",
		"metrics.pushgateway_url",
		"logging.level", "logging.format", "logging.output",
		"validator.phone_region",
	} {
		_ = v.BindEnv(key)
	}
}

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

// findProjectRoot walks up from the working directory looking for go.mod.
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

// expandEnvVars resolves ${VAR} placeholders in string values. Unset
// variables expand to the empty string.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills values that stayed empty from their conventional
// environment variable names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Webhook.URL == "" {
		if val := os.Getenv("SATE_WEBHOOK_URL"); val != "" {
			cfg.Webhook.URL = val
		}
	}
	if cfg.Cache.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Cache.Address = val
		}
	}
	if cfg.Alerts.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Alerts.Region = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sate-calculator"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Webhook.Timeout == 0 {
		cfg.Webhook.Timeout = 10000
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "sate:estimate:"
	}

	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = "sate-calculator"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Validator.PhoneRegion == "" {
		cfg.Validator.PhoneRegion = "ES"
	}

	for key, worker := range cfg.Workers {
		if worker.Timeout == 0 {
			worker.Timeout = 10000
		}
		cfg.Workers[key] = worker
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Webhook.URL != "" {
		u, err := url.Parse(cfg.Webhook.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("webhook.url must be an absolute http(s) URL, got %q", cfg.Webhook.URL)
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when cache.enabled is true")
	}

	if cfg.Alerts.SNS.Enabled && cfg.Alerts.SNS.TopicARN == "" {
		return fmt.Errorf("alerts.sns.topic_arn is required when alerts.sns.enabled is true")
	}
	if cfg.Alerts.SES.Enabled {
		if cfg.Alerts.SES.FromEmail == "" {
			return fmt.Errorf("alerts.ses.from_email is required when alerts.ses.enabled is true")
		}
		if len(cfg.Alerts.SES.To) == 0 {
			return fmt.Errorf("alerts.ses.to is required when alerts.ses.enabled is true")
		}
	}
	if (cfg.Alerts.SNS.Enabled || cfg.Alerts.SES.Enabled) && cfg.Alerts.Region == "" {
		return fmt.Errorf("alerts.region is required when an alert channel is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves step configuration with fallback to defaults.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if cfg != nil {
		if worker, exists := cfg.Workers[workerName]; exists {
			return worker
		}
	}
	return WorkerConfig{
		Enabled: true,
		Timeout: 10000,
	}
}

// IsWorkerEnabled checks if a specific step is enabled. Steps are enabled
// unless configured otherwise.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if cfg == nil {
		return true
	}
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
