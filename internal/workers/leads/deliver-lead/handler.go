// internal/workers/leads/deliver-lead/handler.go
package deliverlead

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/common/notify"
	"sate-calculator/internal/common/webhook"
	"sate-calculator/internal/models"

	"github.com/google/uuid"
)

const (
	TaskType = "deliver-lead"
)

// Sender posts the record to the automation endpoint.
type Sender interface {
	Configured() bool
	Send(ctx context.Context, submissionID string, payload interface{}) (*webhook.Response, error)
}

// Alerter notifies sales about a lead.
type Alerter interface {
	Enabled() bool
	Send(ctx context.Context, alert notify.Alert) error
}

type Handler struct {
	config  *Config
	sender  Sender
	alerter Alerter
	newID   func() string
	logger  logger.Logger
}

// NewHandler wires the webhook and optional alerter. alerter may be nil.
func NewHandler(config *Config, sender Sender, alerter Alerter, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		sender:  sender,
		alerter: alerter,
		newID:   uuid.NewString,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// NewDefaultHandler builds the webhook client from config.
func NewDefaultHandler(config *Config, alerter Alerter, log logger.Logger) *Handler {
	return NewHandler(config, webhook.NewClient(config.WebhookURL, config.WebhookTimeout), alerter, log)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{SubmissionID: input.SubmissionID}
	if out.SubmissionID == "" {
		out.SubmissionID = h.newID()
	}

	log := h.logger.WithFields(map[string]interface{}{
		"submissionId": out.SubmissionID,
		"priority":     input.Priority,
	})

	h.deliver(ctx, input, out, log)

	if h.shouldAlert(input.Priority) {
		if err := h.alerter.Send(ctx, buildAlert(input.Record, out.SubmissionID)); err != nil {
			out.AlertError = err.Error()
			log.Warn("sales alert failed", map[string]interface{}{"error": err.Error()})
		} else {
			out.AlertSent = true
		}
	}

	return out, nil
}

func (h *Handler) deliver(ctx context.Context, input *Input, out *Output, log logger.Logger) {
	if h.sender == nil || !h.sender.Configured() {
		out.Error = apperrors.NewWebhookNotConfiguredError().Message
		metrics.LeadDeliveries.WithLabelValues("skipped").Inc()
		log.Warn("lead not delivered", map[string]interface{}{"reason": out.Error})
		return
	}

	start := time.Now()
	resp, err := h.sender.Send(ctx, out.SubmissionID, input.Record)
	metrics.LeadDeliveryDuration.Observe(time.Since(start).Seconds())

	if resp != nil {
		out.StatusCode = resp.StatusCode
	}
	if err != nil {
		out.Error = err.Error()
		metrics.LeadDeliveries.WithLabelValues("failed").Inc()
		log.Error("lead delivery failed", map[string]interface{}{
			"statusCode": out.StatusCode,
			"error":      err.Error(),
		})
		return
	}

	out.Delivered = true
	metrics.LeadDeliveries.WithLabelValues("delivered").Inc()
	log.Info("lead delivered", map[string]interface{}{
		"statusCode": out.StatusCode,
		"duration":   time.Since(start).String(),
	})
}

func (h *Handler) shouldAlert(p models.Priority) bool {
	return h.config.AlertOnHigh && p == models.PriorityHigh && h.alerter != nil && h.alerter.Enabled()
}

func buildAlert(rec models.ExportRecord, submissionID string) notify.Alert {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", rec.Name)
	fmt.Fprintf(&b, "Email: %s\n", rec.Email)
	if rec.Phone != "" {
		fmt.Fprintf(&b, "Teléfono: %s\n", rec.Phone)
	}
	fmt.Fprintf(&b, "Rol: %s\n", rec.Role)
	fmt.Fprintf(&b, "Edificios: %s\n", rec.Portfolio)
	fmt.Fprintf(&b, "Horizonte: %s\n", rec.Horizon)
	fmt.Fprintf(&b, "Código postal: %s\n", rec.PostalCode)
	fmt.Fprintf(&b, "Coste estimado: %d €\n", rec.TotalCost)
	fmt.Fprintf(&b, "Envío: %s\n", submissionID)

	return notify.Alert{
		Subject: fmt.Sprintf("Lead %s: %s (%s)", rec.Priority, rec.Name, rec.PostalCode),
		Body:    b.String(),
		Attributes: map[string]string{
			"priority":     rec.Priority,
			"recordKind":   rec.RecordKind,
			"postalCode":   rec.PostalCode,
			"submissionId": submissionID,
		},
	}
}
