// Package errors provides the standardized error type used by the lead pipeline
// collaborators. The estimation core never returns errors; these types describe
// failures of validation, delivery and the optional infrastructure around it.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSubmissionInvalid   ErrorCode = "SUBMISSION_INVALID"
	ErrCodeExportSchemaInvalid ErrorCode = "EXPORT_SCHEMA_INVALID"

	ErrCodeWebhookNotConfigured  ErrorCode = "WEBHOOK_NOT_CONFIGURED"
	ErrCodeWebhookDeliveryFailed ErrorCode = "WEBHOOK_DELIVERY_FAILED"
	ErrCodePayloadEncodingFailed ErrorCode = "PAYLOAD_ENCODING_FAILED"

	ErrCodeAlertPublishFailed ErrorCode = "ALERT_PUBLISH_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets a metadata entry and returns the error for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSubmissionInvalidError reports a building or lead record that fails the
// completeness checks. fieldErrors maps field name to message.
func NewSubmissionInvalidError(fieldErrors map[string]string) *StandardError {
	fields := make([]string, 0, len(fieldErrors))
	meta := make(map[string]interface{}, len(fieldErrors))
	for f, msg := range fieldErrors {
		fields = append(fields, f)
		meta[f] = msg
	}
	sort.Strings(fields)
	return &StandardError{
		Code:      ErrCodeSubmissionInvalid,
		Message:   "Submission failed validation",
		Details:   "fields: " + strings.Join(fields, ", "),
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportSchemaInvalidError reports an export record that does not match the
// webhook contract.
func NewExportSchemaInvalidError(problems []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportSchemaInvalid,
		Message:   "Export record does not match webhook contract",
		Details:   strings.Join(problems, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookNotConfiguredError is returned when no endpoint URL is set.
func NewWebhookNotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookNotConfigured,
		Message:   "webhook not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookDeliveryFailedError wraps a transport failure or a non-2xx status.
// statusCode is 0 when no response was received.
func NewWebhookDeliveryFailedError(statusCode int, err error) *StandardError {
	details := fmt.Sprintf("status: %d", statusCode)
	if err != nil {
		details = fmt.Sprintf("status: %d, error: %s", statusCode, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeWebhookDeliveryFailed,
		Message:   "Lead delivery to webhook failed",
		Details:   details,
		Retryable: true,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPayloadEncodingFailedError wraps a JSON marshalling failure.
func NewPayloadEncodingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadEncodingFailed,
		Message:   "Failed to encode export record",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAlertPublishFailedError wraps an SNS or SES failure.
func NewAlertPublishFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertPublishFailed,
		Message:   "Sales alert delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCacheUnavailableError wraps a Redis failure. Callers fall back to
// recomputing.
func NewCacheUnavailableError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Estimate cache unavailable",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewConfigInvalidError reports a configuration problem.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// As extracts a *StandardError from err.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsCode reports whether err is a *StandardError carrying code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "WEBHOOK") || strings.HasPrefix(codeStr, "PAYLOAD"):
		return "DELIVERY"
	case strings.HasPrefix(codeStr, "ALERT"):
		return "NOTIFICATION"
	case strings.HasPrefix(codeStr, "CACHE"):
		return "CACHE"
	case strings.HasPrefix(codeStr, "CONFIG"):
		return "CONFIG"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
