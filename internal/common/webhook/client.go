// internal/common/webhook/client.go
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"time"

	apperrors "sate-calculator/internal/common/errors"
	commonhttp "sate-calculator/internal/common/http"
)

// HeaderSubmissionID carries the per-submission correlation id.
const HeaderSubmissionID = "X-Submission-ID"

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 2048

// Client posts lead records to the automation webhook.
type Client struct {
	url        string
	httpClient *commonhttp.Client
}

// Response is what the webhook answered.
type Response struct {
	StatusCode int
	Body       string
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: commonhttp.NewClient(timeout),
	}
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.url != ""
}

// Send POSTs payload as JSON. A 2xx answer is success; anything else,
// including transport failures, is WEBHOOK_DELIVERY_FAILED. There are no
// retries.
func (c *Client) Send(ctx context.Context, submissionID string, payload interface{}) (*Response, error) {
	if !c.Configured() {
		return nil, apperrors.NewWebhookNotConfiguredError()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewPayloadEncodingFailedError(err)
	}

	headers := map[string]string{}
	if submissionID != "" {
		headers[HeaderSubmissionID] = submissionID
	}

	resp, err := c.httpClient.PostJSON(ctx, c.url, body, headers)
	if err != nil {
		return nil, apperrors.NewWebhookDeliveryFailedError(0, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	out := &Response{StatusCode: resp.StatusCode, Body: string(respBody)}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, apperrors.NewWebhookDeliveryFailedError(resp.StatusCode, nil).
			WithMetadata("body", out.Body)
	}
	return out, nil
}
