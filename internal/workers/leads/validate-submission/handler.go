// internal/workers/leads/validate-submission/handler.go
package validatesubmission

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/common/validation"
	"sate-calculator/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	TaskType = "validate-submission"
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	v := validation.New(config.PhoneRegion)

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if q, ok := field.Interface().(models.Quantity); ok {
			return strings.TrimSpace(q.String())
		}
		return nil
	}, models.Quantity{})

	if err := v.RegisterValidation("quantity", func(fl validator.FieldLevel) bool {
		return models.NewQuantity(fl.Field().String()).Float(0) > 0
	}); err != nil {
		return nil, fmt.Errorf("register quantity validation: %w", err)
	}

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(models.CombineOptions)
		if !c.Valid() {
			sl.ReportError(c.None, "none", "None", "combine", "")
		}
	}, models.CombineOptions{})

	return &Handler{
		config:    config,
		validator: v,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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

	sub := clean(input.Submission)

	fieldErrors, err := h.validator.Struct(sub)
	if err != nil {
		return nil, fmt.Errorf("validate submission: %w", err)
	}
	if len(fieldErrors) > 0 {
		for _, section := range sections(fieldErrors) {
			metrics.SubmissionsRejected.WithLabelValues(section).Inc()
		}
		h.logger.Warn("submission rejected", map[string]interface{}{
			"errorCount": len(fieldErrors),
			"fields":     fieldErrors,
		})
		return nil, apperrors.NewSubmissionInvalidError(fieldErrors)
	}

	sub.Lead.Phone = h.validator.NormalizePhone(sub.Lead.Phone)

	h.logger.Info("submission accepted", map[string]interface{}{
		"postalCode":     sub.Building.PostalCode,
		"isProfessional": sub.Lead.IsProfessional,
	})

	return &Output{Submission: sub}, nil
}

func clean(sub models.Submission) models.Submission {
	b := &sub.Building
	b.PostalCode = models.SanitizePostalCode(b.PostalCode)
	b.ConstructionEra = strings.TrimSpace(b.ConstructionEra)
	b.FacadeType = strings.TrimSpace(b.FacadeType)
	b.EnergyCondition = strings.TrimSpace(b.EnergyCondition)

	l := &sub.Lead
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.CompanyName = strings.TrimSpace(l.CompanyName)
	l.Website = strings.TrimSpace(l.Website)
	l.ServiceArea = strings.TrimSpace(l.ServiceArea)
	if l.IsProfessional {
		sub.Lead = l.AsSupplier()
	}
	return sub
}

// sections returns the top-level groups ("building", "lead") that have errors.
func sections(fieldErrors map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for field := range fieldErrors {
		section := strings.SplitN(field, ".", 2)[0]
		if !seen[section] {
			seen[section] = true
			out = append(out, section)
		}
	}
	return out
}
