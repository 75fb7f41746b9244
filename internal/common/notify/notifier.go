package notify

import (
	"context"
	stderrors "errors"
	"fmt"

	appconfig "sate-calculator/internal/common/config"
	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const (
	ChannelSNS = "sns"
	ChannelSES = "ses"
)

// Alert is a short sales notification about a lead.
type Alert struct {
	Subject string
	Body    string
	// Attributes are forwarded as SNS message attributes.
	Attributes map[string]string
}

// Notifier fans an alert out to the enabled channels. A nil client disables
// its channel.
type Notifier struct {
	sns       SNSService
	topicARN  string
	ses       SESService
	fromEmail string
	to        []string
}

func New(snsClient SNSService, topicARN string, sesClient SESService, fromEmail string, to []string) *Notifier {
	return &Notifier{
		sns:       snsClient,
		topicARN:  topicARN,
		ses:       sesClient,
		fromEmail: fromEmail,
		to:        to,
	}
}

// NewFromConfig builds AWS clients only for the channels switched on in cfg.
// With every channel off it returns a Notifier that sends nothing.
func NewFromConfig(ctx context.Context, cfg appconfig.AlertsConfig) (*Notifier, error) {
	if !cfg.SNS.Enabled && !cfg.SES.Enabled {
		return New(nil, "", nil, "", nil), nil
	}

	snsClient, sesClient, err := NewAWSClients(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	n := New(nil, "", nil, "", nil)
	if cfg.SNS.Enabled {
		n.sns = snsClient
		n.topicARN = cfg.SNS.TopicARN
	}
	if cfg.SES.Enabled {
		n.ses = sesClient
		n.fromEmail = cfg.SES.FromEmail
		n.to = cfg.SES.To
	}
	return n, nil
}

// Enabled reports whether at least one channel is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && (n.sns != nil || n.ses != nil)
}

// Send delivers the alert on every enabled channel. Each failing channel
// contributes an ALERT_PUBLISH_FAILED error to the joined result.
func (n *Notifier) Send(ctx context.Context, alert Alert) error {
	if !n.Enabled() {
		return nil
	}

	var errs []error
	if n.sns != nil {
		if err := n.publish(ctx, alert); err != nil {
			metrics.AlertsSent.WithLabelValues(ChannelSNS, "failed").Inc()
			errs = append(errs, apperrors.NewAlertPublishFailedError(ChannelSNS, err))
		} else {
			metrics.AlertsSent.WithLabelValues(ChannelSNS, "sent").Inc()
		}
	}
	if n.ses != nil && len(n.to) > 0 {
		if err := n.sendEmail(ctx, alert); err != nil {
			metrics.AlertsSent.WithLabelValues(ChannelSES, "failed").Inc()
			errs = append(errs, apperrors.NewAlertPublishFailedError(ChannelSES, err))
		} else {
			metrics.AlertsSent.WithLabelValues(ChannelSES, "sent").Inc()
		}
	}
	return stderrors.Join(errs...)
}

func (n *Notifier) publish(ctx context.Context, alert Alert) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(alert.Subject),
		Message:  aws.String(alert.Body),
	}
	if len(alert.Attributes) > 0 {
		input.MessageAttributes = make(map[string]snstypes.MessageAttributeValue, len(alert.Attributes))
		for k, v := range alert.Attributes {
			input.MessageAttributes[k] = snstypes.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}
	_, err := n.sns.Publish(ctx, input)
	return err
}

func (n *Notifier) sendEmail(ctx context.Context, alert Alert) error {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: n.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(alert.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(alert.Body)},
			},
		},
		Source: aws.String(n.fromEmail),
	})
	return err
}
