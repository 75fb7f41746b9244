package deliverlead

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/common/notify"
	"sate-calculator/internal/common/webhook"
	"sate-calculator/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(url string) *Config {
	return &Config{WebhookURL: url, WebhookTimeout: 2 * time.Second, AlertOnHigh: true}
}

func createTestInput(priority models.Priority) *Input {
	return &Input{
		Record: models.ExportRecord{
			RecordKind: "DEMANDA",
			Name:       "Marta Ruiz",
			Email:      "marta@fincas-ruiz.es",
			Role:       "Administrador",
			Portfolio:  "Entre 2 y 10",
			Horizon:    "6 meses",
			PostalCode: "28001",
			TotalCost:  93915,
			Priority:   map[models.Priority]string{models.PriorityHigh: "ALTA", models.PriorityMedium: "MEDIA", models.PriorityLow: "BAJA"}[priority],
			Timestamp:  "2024-03-15T09:30:45.123Z",
		},
		Priority:     priority,
		SubmissionID: "5f0c6a2e-0000-4000-8000-000000000001",
	}
}

type mockAlerter struct {
	enabled bool
	err     error
	calls   int32
	last    notify.Alert
}

func (m *mockAlerter) Enabled() bool { return m.enabled }

func (m *mockAlerter) Send(ctx context.Context, alert notify.Alert) error {
	atomic.AddInt32(&m.calls, 1)
	m.last = alert
	return m.err
}

type mockSNS struct {
	err error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return &sns.PublishOutput{}, m.err
}

func newWebhookServer(t *testing.T, status int, received *map[string]interface{}, header *http.Header) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header != nil {
			*header = r.Header.Clone()
		}
		if received != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, received)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Delivery
// ==========================

func TestExecute_Delivered(t *testing.T) {
	var received map[string]interface{}
	var header http.Header
	server := newWebhookServer(t, http.StatusOK, &received, &header)

	h := NewDefaultHandler(createTestConfig(server.URL), nil, logger.NewTestLogger(t))
	before := testutil.ToFloat64(metrics.LeadDeliveries.WithLabelValues("delivered"))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityMedium))
	require.NoError(t, err)

	assert.True(t, out.Delivered)
	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.Empty(t, out.Error)
	assert.Equal(t, "5f0c6a2e-0000-4000-8000-000000000001", out.SubmissionID)

	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, out.SubmissionID, header.Get(webhook.HeaderSubmissionID))
	assert.Equal(t, "Marta Ruiz", received["nombre"])
	assert.Equal(t, "MEDIA", received["prioridadLead"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.LeadDeliveries.WithLabelValues("delivered")))
}

func TestExecute_GeneratesSubmissionID(t *testing.T) {
	server := newWebhookServer(t, http.StatusAccepted, nil, nil)
	h := NewDefaultHandler(createTestConfig(server.URL), nil, logger.NewTestLogger(t))

	in := createTestInput(models.PriorityLow)
	in.SubmissionID = ""
	out, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Delivered)
	assert.Len(t, out.SubmissionID, 36)

	h.newID = func() string { return "fixed-id" }
	out, err = h.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", out.SubmissionID)
}

func TestExecute_Non2xxIsReportedNotReturned(t *testing.T) {
	server := newWebhookServer(t, http.StatusInternalServerError, nil, nil)
	h := NewDefaultHandler(createTestConfig(server.URL), nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityLow))
	require.NoError(t, err)
	assert.False(t, out.Delivered)
	assert.Equal(t, http.StatusInternalServerError, out.StatusCode)
	assert.Contains(t, out.Error, "WEBHOOK_DELIVERY_FAILED")
}

func TestExecute_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	h := NewDefaultHandler(createTestConfig(url), nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createTestInput(models.PriorityLow))
	require.NoError(t, err)
	assert.False(t, out.Delivered)
	assert.Zero(t, out.StatusCode)
	assert.Contains(t, out.Error, "WEBHOOK_DELIVERY_FAILED")
}

func TestExecute_NotConfigured(t *testing.T) {
	h := NewDefaultHandler(createTestConfig(""), nil, logger.NewTestLogger(t))
	before := testutil.ToFloat64(metrics.LeadDeliveries.WithLabelValues("skipped"))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityLow))
	require.NoError(t, err)
	assert.False(t, out.Delivered)
	assert.Equal(t, "webhook not configured", out.Error)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.LeadDeliveries.WithLabelValues("skipped")))
}

// ==========================
// Sales Alerts
// ==========================

func TestExecute_AlertsOnlyForHighPriority(t *testing.T) {
	server := newWebhookServer(t, http.StatusOK, nil, nil)

	tests := []struct {
		priority  models.Priority
		wantCalls int32
	}{
		{models.PriorityHigh, 1},
		{models.PriorityMedium, 0},
		{models.PriorityLow, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			alerter := &mockAlerter{enabled: true}
			h := NewDefaultHandler(createTestConfig(server.URL), alerter, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), createTestInput(tt.priority))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, alerter.calls)
			assert.Equal(t, tt.wantCalls == 1, out.AlertSent)
		})
	}
}

func TestExecute_AlertContent(t *testing.T) {
	server := newWebhookServer(t, http.StatusOK, nil, nil)
	alerter := &mockAlerter{enabled: true}
	h := NewDefaultHandler(createTestConfig(server.URL), alerter, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)

	assert.Equal(t, "Lead ALTA: Marta Ruiz (28001)", alerter.last.Subject)
	assert.Contains(t, alerter.last.Body, "Coste estimado: 93915 €")
	assert.Equal(t, "ALTA", alerter.last.Attributes["priority"])
	assert.Equal(t, "5f0c6a2e-0000-4000-8000-000000000001", alerter.last.Attributes["submissionId"])
}

func TestExecute_AlertFailureDoesNotAffectDelivery(t *testing.T) {
	server := newWebhookServer(t, http.StatusOK, nil, nil)
	alerter := &mockAlerter{enabled: true, err: errors.New("throttled")}
	h := NewDefaultHandler(createTestConfig(server.URL), alerter, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)
	assert.True(t, out.Delivered)
	assert.False(t, out.AlertSent)
	assert.Equal(t, "throttled", out.AlertError)
}

func TestExecute_AlertSentEvenWhenDeliveryFails(t *testing.T) {
	alerter := &mockAlerter{enabled: true}
	h := NewDefaultHandler(createTestConfig(""), alerter, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)
	assert.False(t, out.Delivered)
	assert.True(t, out.AlertSent)
}

func TestExecute_DisabledAlerter(t *testing.T) {
	server := newWebhookServer(t, http.StatusOK, nil, nil)

	cfg := createTestConfig(server.URL)
	alerter := &mockAlerter{enabled: false}
	h := NewDefaultHandler(cfg, alerter, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)
	assert.False(t, out.AlertSent)
	assert.Zero(t, alerter.calls)

	cfg.AlertOnHigh = false
	alerter.enabled = true
	out, err = h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)
	assert.False(t, out.AlertSent)
	assert.Zero(t, alerter.calls)
}

func TestExecute_WithSNSNotifier(t *testing.T) {
	server := newWebhookServer(t, http.StatusOK, nil, nil)
	n := notify.New(&mockSNS{err: errors.New("topic not found")}, "arn:aws:sns:eu-west-1:123456789012:sate-leads", nil, "", nil)
	h := NewDefaultHandler(createTestConfig(server.URL), n, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)
	assert.True(t, out.Delivered)
	assert.Contains(t, out.AlertError, "ALERT_PUBLISH_FAILED")
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(nil)
	assert.Empty(t, cfg.WebhookURL)
	assert.True(t, cfg.AlertOnHigh)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
}
