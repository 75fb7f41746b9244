// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Webhook   WebhookConfig           `mapstructure:"webhook"`
	Cache     CacheConfig             `mapstructure:"cache"`
	Alerts    AlertsConfig            `mapstructure:"alerts"`
	Metrics   MetricsConfig           `mapstructure:"metrics"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Validator ValidatorConfig         `mapstructure:"validator"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// WebhookConfig points at the automation endpoint that receives lead records.
type WebhookConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// CacheConfig controls optional memoisation of estimates in Redis.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
	Prefix   string `mapstructure:"prefix"`
}

// AlertsConfig holds the sales alert channels for high priority leads.
type AlertsConfig struct {
	Region string `mapstructure:"region"`
	SNS    struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	SES struct {
		Enabled   bool     `mapstructure:"enabled"`
		FromEmail string   `mapstructure:"from_email"`
		To        []string `mapstructure:"to"`
	} `mapstructure:"ses"`
}

// MetricsConfig configures the optional Pushgateway push at exit.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// WorkerConfig holds settings applicable to every pipeline step.
type WorkerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidatorConfig holds submission validation settings.
type ValidatorConfig struct {
	PhoneRegion string `mapstructure:"phone_region"`
}

// WebhookTimeout returns the webhook timeout as a duration.
func (c *Config) WebhookTimeout() time.Duration {
	return GetDuration(c.Webhook.Timeout)
}

// CacheTTL returns the estimate cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}
