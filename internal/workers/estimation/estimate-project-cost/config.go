// internal/workers/estimation/estimate-project-cost/config.go
package estimateprojectcost

import (
	"time"

	"sate-calculator/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
