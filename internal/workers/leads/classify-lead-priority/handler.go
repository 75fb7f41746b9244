// internal/workers/leads/classify-lead-priority/handler.go
package classifyleadpriority

import (
	"context"

	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/models"
)

const (
	TaskType = "classify-lead-priority"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	priority, rule := classify(input.Lead)
	kind := models.KindOf(input.Lead)

	metrics.LeadsClassified.WithLabelValues(string(priority), string(kind)).Inc()

	h.logger.Info("lead classified", map[string]interface{}{
		"priority": priority,
		"rule":     rule,
		"kind":     kind,
		"role":     input.Lead.Role,
		"horizon":  input.Lead.Horizon,
	})

	return &Output{Priority: priority, Rule: rule}, nil
}
