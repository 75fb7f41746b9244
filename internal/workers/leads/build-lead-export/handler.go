// internal/workers/leads/build-lead-export/handler.go
package buildleadexport

import (
	"context"
	"fmt"
	"time"

	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/validation"
)

const (
	TaskType = "build-lead-export"
)

type Handler struct {
	config *Config
	schema *validation.SchemaValidator
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schema, err := validation.NewExportRecordValidator()
	if err != nil {
		return nil, fmt.Errorf("load export schema: %w", err)
	}

	return &Handler{
		config: config,
		schema: schema,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
}

// WithClock replaces the timestamp source.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
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

	record := ToExportRecord(input.Building, input.Lead, input.Result, input.Priority, h.now())

	if h.config.ValidateSchema {
		res, err := h.schema.Validate(record)
		if err != nil {
			return nil, fmt.Errorf("validate export record: %w", err)
		}
		if !res.Valid {
			h.logger.Error("export record violates webhook contract", map[string]interface{}{
				"errors": res.Messages(),
			})
			return nil, apperrors.NewExportSchemaInvalidError(res.Messages())
		}
	}

	h.logger.Debug("export record built", map[string]interface{}{
		"kind":      record.RecordKind,
		"priority":  record.Priority,
		"timestamp": record.Timestamp,
	})

	return &Output{Record: record}, nil
}
