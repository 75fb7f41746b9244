package validatesubmission

import (
	"context"
	"testing"
	"time"

	"sate-calculator/internal/common/config"
	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{PhoneRegion: "ES", Timeout: time.Second}
}

func createTestSubmission() models.Submission {
	return models.Submission{
		Building: models.BuildingAttributes{
			PostalCode:      "28001",
			ConstructionEra: models.Era1980To2006,
			Floors:          models.NewQuantity("5"),
			Dwellings:       models.NewQuantity("20"),
			FacadeArea:      models.NewQuantity("600"),
			FacadeType:      models.FacadeBrick,
			EnergyCondition: models.ConditionAverage,
		},
		Lead: models.LeadAttributes{
			Name:      "Marta Ruiz",
			Email:     "marta@fincas-ruiz.es",
			Phone:     "612 345 678",
			Role:      models.RoleAdministrator,
			Portfolio: models.Portfolio2To10,
			Horizon:   models.Horizon6Months,
			Vendor:    models.VendorNo,
		},
	}
}

func newTestHandler(t *testing.T) *Handler {
	h, err := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func fieldErrors(t *testing.T, err error) map[string]interface{} {
	t.Helper()
	stdErr, ok := apperrors.As(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, apperrors.ErrCodeSubmissionInvalid, stdErr.Code)
	return stdErr.Metadata
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_ValidDemandLead(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Submission: createTestSubmission()})
	require.NoError(t, err)
	assert.Equal(t, "+34612345678", out.Submission.Lead.Phone)
	assert.Equal(t, models.RoleAdministrator, out.Submission.Lead.Role)
}

func TestExecute_CleansInput(t *testing.T) {
	h := newTestHandler(t)
	sub := createTestSubmission()
	sub.Building.PostalCode = " 28-001 "
	sub.Building.Floors = models.NewQuantity("5 plantas")
	sub.Lead.Name = "  Marta Ruiz "
	sub.Lead.Email = " marta@fincas-ruiz.es"

	out, err := h.Execute(context.Background(), &Input{Submission: sub})
	require.NoError(t, err)
	assert.Equal(t, "28001", out.Submission.Building.PostalCode)
	assert.Equal(t, "Marta Ruiz", out.Submission.Lead.Name)
	assert.Equal(t, "marta@fincas-ruiz.es", out.Submission.Lead.Email)
	assert.Equal(t, 5, out.Submission.Building.Floors.Int(1))
}

func TestExecute_ProfessionalLead(t *testing.T) {
	h := newTestHandler(t)
	sub := createTestSubmission()
	sub.Lead = models.LeadAttributes{
		Name:           "Jorge Sanz",
		Email:          "jorge@aislamientos-sanz.es",
		IsProfessional: true,
		Horizon:        models.Horizon6Months,
		CompanyName:    "Aislamientos Sanz",
		CompanyType:    models.CompanyInstaller,
	}

	out, err := h.Execute(context.Background(), &Input{Submission: sub})
	require.NoError(t, err)
	assert.Equal(t, models.RoleProfessional, out.Submission.Lead.Role)
	assert.Empty(t, out.Submission.Lead.Horizon)
	assert.Empty(t, out.Submission.Lead.Phone)
}

// ==========================
// Rejections
// ==========================

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *models.Submission)
		field  string
		msg    string
	}{
		{
			name:   "missing postal code",
			mutate: func(s *models.Submission) { s.Building.PostalCode = "CP" },
			field:  "building.postalCode",
			msg:    "is required",
		},
		{
			name:   "unknown era",
			mutate: func(s *models.Submission) { s.Building.ConstructionEra = "1900" },
			field:  "building.constructionEra",
		},
		{
			name:   "blank floors",
			mutate: func(s *models.Submission) { s.Building.Floors = models.NewQuantity(" ") },
			field:  "building.floors",
			msg:    "is required",
		},
		{
			name:   "zero dwellings",
			mutate: func(s *models.Submission) { s.Building.Dwellings = models.NewQuantity("0") },
			field:  "building.dwellings",
			msg:    "must be a positive number",
		},
		{
			name:   "non numeric area",
			mutate: func(s *models.Submission) { s.Building.FacadeArea = models.NewQuantity("mucha") },
			field:  "building.facadeArea",
			msg:    "must be a positive number",
		},
		{
			name:   "unknown facade",
			mutate: func(s *models.Submission) { s.Building.FacadeType = "madera" },
			field:  "building.facadeType",
			msg:    "must be one of: ladrillo monocapa revoco otro",
		},
		{
			name:   "none combined with windows",
			mutate: func(s *models.Submission) { s.Building.Combine = models.CombineOptions{Windows: true, None: true} },
			field:  "building.combine.none",
			msg:    "cannot be selected together with other works",
		},
		{
			name:   "missing name",
			mutate: func(s *models.Submission) { s.Lead.Name = "  " },
			field:  "lead.name",
			msg:    "is required",
		},
		{
			name:   "bad email",
			mutate: func(s *models.Submission) { s.Lead.Email = "marta-at-fincas" },
			field:  "lead.email",
			msg:    "must be a valid email address",
		},
		{
			name:   "bad phone",
			mutate: func(s *models.Submission) { s.Lead.Phone = "123" },
			field:  "lead.phone",
			msg:    "must be a valid phone number",
		},
		{
			name:   "demand lead without horizon",
			mutate: func(s *models.Submission) { s.Lead.Horizon = "" },
			field:  "lead.horizon",
			msg:    "is required",
		},
		{
			name: "professional without company",
			mutate: func(s *models.Submission) {
				s.Lead.IsProfessional = true
				s.Lead.CompanyType = models.CompanyOther
			},
			field: "lead.companyName",
			msg:   "is required",
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := createTestSubmission()
			tt.mutate(&sub)

			out, err := h.Execute(context.Background(), &Input{Submission: sub})
			require.Error(t, err)
			assert.Nil(t, out)

			fields := fieldErrors(t, err)
			require.Contains(t, fields, tt.field)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, fields[tt.field])
			}
		})
	}
}

func TestExecute_EmptySubmissionReportsEveryRequiredField(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	fields := fieldErrors(t, err)

	for _, f := range []string{
		"building.postalCode", "building.constructionEra", "building.floors",
		"building.dwellings", "building.facadeArea", "building.facadeType",
		"building.energyCondition", "lead.name", "lead.email", "lead.role",
		"lead.portfolio", "lead.horizon", "lead.vendor",
	} {
		assert.Contains(t, fields, f)
	}
	assert.NotContains(t, fields, "lead.companyName")
}

func TestExecute_RecordsRejectionMetrics(t *testing.T) {
	h := newTestHandler(t)
	before := testutil.ToFloat64(metrics.SubmissionsRejected.WithLabelValues("lead"))

	sub := createTestSubmission()
	sub.Lead.Email = ""
	_, err := h.Execute(context.Background(), &Input{Submission: sub})
	require.Error(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SubmissionsRejected.WithLabelValues("lead")))
}

func TestExecute_CancelledContext(t *testing.T) {
	h := newTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{Submission: createTestSubmission()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadConfig_DefaultRegion(t *testing.T) {
	assert.Equal(t, "ES", LoadConfig(nil).PhoneRegion)
}

func TestLoadConfig_WorkerTimeout(t *testing.T) {
	cfg := LoadConfig(&config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: true, Timeout: 2000},
	}})
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestExecute_TimeoutExpires(t *testing.T) {
	h, err := NewHandler(&Config{PhoneRegion: "ES", Timeout: time.Nanosecond}, logger.NewTestLogger(t))
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{Submission: createTestSubmission()})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
