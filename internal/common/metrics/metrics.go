// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector of the pipeline so it can be pushed as a unit.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	EstimatesComputed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sate_estimates_computed_total",
			Help: "Total number of facade estimates produced",
		},
		[]string{"source"}, // computed | cache
	)

	EstimatedCost = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sate_estimated_cost_eur",
			Help:    "Tax-inclusive estimated project cost",
			Buckets: prometheus.ExponentialBuckets(10000, 2, 10),
		},
	)

	LeadsClassified = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sate_leads_classified_total",
			Help: "Total number of leads classified by priority tier",
		},
		[]string{"priority", "kind"},
	)

	SubmissionsRejected = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sate_submissions_rejected_total",
			Help: "Total number of submissions failing validation",
		},
		[]string{"section"}, // building | lead
	)

	LeadDeliveries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sate_lead_deliveries_total",
			Help: "Total number of webhook delivery attempts by outcome",
		},
		[]string{"status"}, // delivered | failed | skipped
	)

	LeadDeliveryDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sate_lead_delivery_duration_seconds",
			Help:    "Duration of webhook delivery in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AlertsSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sate_sales_alerts_total",
			Help: "Total number of high priority sales alerts by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)
