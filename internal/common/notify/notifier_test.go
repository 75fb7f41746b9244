package notify

import (
	"context"
	"errors"
	"testing"

	appconfig "sate-calculator/internal/common/config"
	apperrors "sate-calculator/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func testAlert() Alert {
	return Alert{
		Subject:    "Lead ALTA: Comunidad Calle Mayor",
		Body:       "Administrador, Entre 2 y 10 edificios, 6 meses",
		Attributes: map[string]string{"priority": "ALTA"},
	}
}

// ==========================
// Tests
// ==========================

func TestNotifier_SendsOnBothChannels(t *testing.T) {
	var published *sns.PublishInput
	var emailed *ses.SendEmailInput

	n := New(
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			published = params
			return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
		}},
		"arn:aws:sns:eu-west-1:123456789012:sate-leads",
		&MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			emailed = params
			return &ses.SendEmailOutput{MessageId: aws.String("e-1")}, nil
		}},
		"leads@example.com",
		[]string{"sales@example.com"},
	)

	require.True(t, n.Enabled())
	require.NoError(t, n.Send(context.Background(), testAlert()))

	require.NotNil(t, published)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:sate-leads", aws.ToString(published.TopicArn))
	assert.Equal(t, "Lead ALTA: Comunidad Calle Mayor", aws.ToString(published.Subject))
	assert.Equal(t, "ALTA", aws.ToString(published.MessageAttributes["priority"].StringValue))

	require.NotNil(t, emailed)
	assert.Equal(t, []string{"sales@example.com"}, emailed.Destination.ToAddresses)
	assert.Equal(t, "leads@example.com", aws.ToString(emailed.Source))
	assert.Equal(t, "Administrador, Entre 2 y 10 edificios, 6 meses", aws.ToString(emailed.Message.Body.Text.Data))
}

func TestNotifier_ChannelFailuresAreJoined(t *testing.T) {
	sesCalled := false
	n := New(
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		}},
		"arn:topic",
		&MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			sesCalled = true
			return &ses.SendEmailOutput{}, nil
		}},
		"leads@example.com",
		[]string{"sales@example.com"},
	)

	err := n.Send(context.Background(), testAlert())
	require.Error(t, err)
	assert.True(t, sesCalled, "a failing channel must not stop the others")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAlertPublishFailed))
	assert.Contains(t, err.Error(), "channel: sns")
	assert.NotContains(t, err.Error(), "channel: ses")
}

func TestNotifier_Disabled(t *testing.T) {
	n, err := NewFromConfig(context.Background(), appconfig.AlertsConfig{})
	require.NoError(t, err)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Send(context.Background(), testAlert()))

	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Enabled())
	assert.NoError(t, nilNotifier.Send(context.Background(), testAlert()))
}

func TestNotifier_SESWithoutRecipientsIsSkipped(t *testing.T) {
	n := New(nil, "", &MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		t.Fatal("SendEmail must not be called without recipients")
		return nil, nil
	}}, "leads@example.com", nil)

	assert.NoError(t, n.Send(context.Background(), testAlert()))
}
