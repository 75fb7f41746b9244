// Package pipeline runs a calculator submission through every step:
// validation, estimation, classification, export and delivery.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"sate-calculator/internal/common/config"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/models"
	estimateprojectcost "sate-calculator/internal/workers/estimation/estimate-project-cost"
	buildleadexport "sate-calculator/internal/workers/leads/build-lead-export"
	classifyleadpriority "sate-calculator/internal/workers/leads/classify-lead-priority"
	deliverlead "sate-calculator/internal/workers/leads/deliver-lead"
	validatesubmission "sate-calculator/internal/workers/leads/validate-submission"
)

// Report is everything computed for one submission. Delivery is nil when
// the delivery step did not run.
type Report struct {
	Submission  models.Submission       `json:"submission"`
	Result      models.EstimationResult `json:"result"`
	Cached      bool                    `json:"cached"`
	Priority    models.Priority         `json:"priority"`
	Rule        string                  `json:"rule"`
	Record      *models.ExportRecord    `json:"record,omitempty"`
	ExportError string                  `json:"exportError,omitempty"`
	Delivery    *deliverlead.Output     `json:"delivery,omitempty"`
}

// Delivered reports whether the record reached the webhook.
func (r *Report) Delivered() bool {
	return r.Delivery != nil && r.Delivery.Delivered
}

// Options carries the optional collaborators. Zero values disable caching
// and alerts and use the webhook configured in the app config.
type Options struct {
	Cache   estimateprojectcost.EstimateCache
	Sender  deliverlead.Sender
	Alerter deliverlead.Alerter
	Now     func() time.Time
	// DryRun stops before delivery.
	DryRun bool
}

type Runner struct {
	validate *validatesubmission.Handler
	estimate *estimateprojectcost.Handler
	classify *classifyleadpriority.Handler
	export   *buildleadexport.Handler
	deliver  *deliverlead.Handler

	deliverEnabled bool
	dryRun         bool
	logger         logger.Logger
}

func New(cfg *config.Config, opts Options, log logger.Logger) (*Runner, error) {
	validate, err := validatesubmission.NewHandler(validatesubmission.LoadConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", validatesubmission.TaskType, err)
	}

	export, err := buildleadexport.NewHandler(buildleadexport.LoadConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", buildleadexport.TaskType, err)
	}
	if opts.Now != nil {
		export.WithClock(opts.Now)
	}

	deliverCfg := deliverlead.LoadConfig(cfg)
	var deliver *deliverlead.Handler
	if opts.Sender != nil {
		deliver = deliverlead.NewHandler(deliverCfg, opts.Sender, opts.Alerter, log)
	} else {
		deliver = deliverlead.NewDefaultHandler(deliverCfg, opts.Alerter, log)
	}

	return &Runner{
		validate:       validate,
		estimate:       estimateprojectcost.NewHandler(estimateprojectcost.LoadConfig(cfg), opts.Cache, log),
		classify:       classifyleadpriority.NewHandler(classifyleadpriority.LoadConfig(cfg), log),
		export:         export,
		deliver:        deliver,
		deliverEnabled: config.IsWorkerEnabled(cfg, deliverlead.TaskType),
		dryRun:         opts.DryRun,
		logger:         log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}, nil
}

// Estimate runs the pricing engine alone.
func (r *Runner) Estimate(ctx context.Context, building models.BuildingAttributes) (*estimateprojectcost.Output, error) {
	return r.estimate.Execute(ctx, &estimateprojectcost.Input{Building: building})
}

// Submit runs the whole pipeline. Only validation failures are returned as
// errors; delivery problems are recorded in the report.
func (r *Runner) Submit(ctx context.Context, sub models.Submission) (*Report, error) {
	validated, err := r.validate.Execute(ctx, &validatesubmission.Input{Submission: sub})
	if err != nil {
		return nil, err
	}
	sub = validated.Submission

	estimated, err := r.Estimate(ctx, sub.Building)
	if err != nil {
		return nil, err
	}

	classified, err := r.classify.Execute(ctx, &classifyleadpriority.Input{Lead: sub.Lead})
	if err != nil {
		return nil, err
	}

	report := &Report{
		Submission: sub,
		Result:     estimated.Result,
		Cached:     estimated.Cached,
		Priority:   classified.Priority,
		Rule:       classified.Rule,
	}

	exported, err := r.export.Execute(ctx, &buildleadexport.Input{
		Building: sub.Building,
		Lead:     sub.Lead,
		Result:   &report.Result,
		Priority: report.Priority,
	})
	if err != nil {
		report.ExportError = err.Error()
		r.logger.Error("export record not built", map[string]interface{}{"error": err.Error()})
		return report, nil
	}
	report.Record = &exported.Record

	if r.dryRun || !r.deliverEnabled {
		r.logger.Info("delivery skipped", map[string]interface{}{
			"dryRun":  r.dryRun,
			"enabled": r.deliverEnabled,
		})
		return report, nil
	}

	delivered, err := r.deliver.Execute(ctx, &deliverlead.Input{
		Record:   exported.Record,
		Priority: report.Priority,
	})
	if err != nil {
		r.logger.Error("delivery step failed", map[string]interface{}{"error": err.Error()})
		return report, nil
	}
	report.Delivery = delivered

	r.logger.Info("submission processed", map[string]interface{}{
		"submissionId": delivered.SubmissionID,
		"priority":     report.Priority,
		"delivered":    delivered.Delivered,
		"taxInclusive": report.Result.Cost.TaxInclusive,
	})

	return report, nil
}
