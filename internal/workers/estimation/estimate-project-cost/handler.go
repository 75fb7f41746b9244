// internal/workers/estimation/estimate-project-cost/handler.go
package estimateprojectcost

import (
	"context"
	"time"

	"sate-calculator/internal/common/cache"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/models"
)

const (
	TaskType = "estimate-project-cost"
)

// EstimateCache memoises results by building fingerprint.
type EstimateCache interface {
	Get(ctx context.Context, fingerprint string, dst interface{}) (bool, error)
	Set(ctx context.Context, fingerprint string, v interface{}) error
}

type Handler struct {
	config *Config
	cache  EstimateCache
	logger logger.Logger
}

// NewHandler builds the estimation step. cache may be nil.
func NewHandler(config *Config, cache EstimateCache, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute estimates the building. Cache failures are logged and the
// estimate is recomputed; Execute itself never fails on valid input.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	fingerprint := h.fingerprint(input.Building)

	if h.cache != nil && fingerprint != "" {
		var cached models.EstimationResult
		hit, err := h.cache.Get(ctx, fingerprint, &cached)
		if err != nil {
			h.logger.Warn("estimate cache lookup failed", map[string]interface{}{
				"error": err,
			})
		}
		if hit {
			metrics.EstimatesComputed.WithLabelValues("cache").Inc()
			h.logger.Debug("estimate served from cache", map[string]interface{}{
				"fingerprint": fingerprint,
			})
			return &Output{Result: cached, Cached: true}, nil
		}
	}

	result := Estimate(input.Building)

	metrics.EstimatesComputed.WithLabelValues("computed").Inc()
	metrics.EstimatedCost.Observe(float64(result.Cost.TaxInclusive))

	h.logger.Info("estimate computed", map[string]interface{}{
		"postalCode":   result.PostalCode,
		"facadeArea":   result.FacadeArea,
		"dwellings":    result.Dwellings,
		"taxInclusive": result.Cost.TaxInclusive,
		"paybackYears": result.Payback.Years,
		"duration":     time.Since(start).String(),
	})

	if h.cache != nil && fingerprint != "" {
		if err := h.cache.Set(ctx, fingerprint, result); err != nil {
			h.logger.Warn("estimate cache store failed", map[string]interface{}{
				"error": err,
			})
		}
	}

	return &Output{Result: result}, nil
}

func (h *Handler) fingerprint(b models.BuildingAttributes) string {
	if h.cache == nil {
		return ""
	}
	fp, err := cache.Fingerprint(b)
	if err != nil {
		h.logger.Warn("building fingerprint failed", map[string]interface{}{
			"error": err,
		})
		return ""
	}
	return fp
}
