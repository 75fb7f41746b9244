// internal/workers/leads/validate-submission/config.go
package validatesubmission

import (
	"time"

	"sate-calculator/internal/common/config"
	"sate-calculator/internal/common/validation"
)

type Config struct {
	PhoneRegion string
	Timeout     time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	region := validation.DefaultPhoneRegion
	if appCfg != nil && appCfg.Validator.PhoneRegion != "" {
		region = appCfg.Validator.PhoneRegion
	}
	return &Config{
		PhoneRegion: region,
		Timeout:     config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
