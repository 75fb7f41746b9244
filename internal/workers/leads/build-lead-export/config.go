// internal/workers/leads/build-lead-export/config.go
package buildleadexport

import (
	"time"

	"sate-calculator/internal/common/config"
)

type Config struct {
	ValidateSchema bool
	Timeout        time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	return &Config{
		ValidateSchema: true,
		Timeout:        config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
