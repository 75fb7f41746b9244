// internal/workers/leads/deliver-lead/config.go
package deliverlead

import (
	"time"

	"sate-calculator/internal/common/config"
)

type Config struct {
	WebhookURL     string
	WebhookTimeout time.Duration
	// AlertOnHigh sends a sales alert for HIGH leads when a channel is set up.
	AlertOnHigh bool
}

func LoadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		WebhookTimeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
		AlertOnHigh:    true,
	}
	if appCfg != nil {
		cfg.WebhookURL = appCfg.Webhook.URL
		if appCfg.Webhook.Timeout > 0 {
			cfg.WebhookTimeout = appCfg.WebhookTimeout()
		}
	}
	return cfg
}
