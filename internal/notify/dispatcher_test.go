// internal/notify/dispatcher_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"

	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/telegram"
)

type mockTelegramSender struct {
	SendMessageFunc func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error

	calls int
}

func (m *mockTelegramSender) SendMessage(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
	m.calls++
	return m.SendMessageFunc(ctx, chatID, text, button)
}

type mockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)

	calls int
}

func (m *mockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type mockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)

	calls int
}

func (m *mockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func fullRecipient() Recipient {
	return Recipient{
		UserID:     9,
		TelegramID: 555,
		Email:      "dana@example.com",
		Phone:      "+15551234567",
	}
}

func dispatcherConfig() *DispatcherConfig {
	return &DispatcherConfig{
		EmailEnabled:          true,
		FromEmail:             "noreply@jobboard.example.com",
		SMSEnabled:            true,
		SMSMilestoneThreshold: 50,
	}
}

func TestDispatch_TelegramPrimary(t *testing.T) {
	tg := &mockTelegramSender{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
			assert.Equal(t, int64(555), chatID)
			assert.NotNil(t, button)
			return nil
		},
	}
	email := &mockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}

	d := NewMultiChannelDispatcher(dispatcherConfig(), tg, email, nil, logger.NewNoOpLogger())
	msg := milestoneMessage("Backend Engineer", 42, 5, "https://app.example.com")

	delivered := d.Dispatch(context.Background(), fullRecipient(), msg)

	assert.True(t, delivered)
	assert.Equal(t, 1, tg.calls)
	// Email is a fallback, not a duplicate channel.
	assert.Equal(t, 0, email.calls)
}

func TestDispatch_EmailFallbackOnTelegramFailure(t *testing.T) {
	tg := &mockTelegramSender{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
			return errors.New("chat not found")
		},
	}
	email := &mockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Equal(t, "dana@example.com", params.Destination.ToAddresses[0])
			return &ses.SendEmailOutput{}, nil
		},
	}

	d := NewMultiChannelDispatcher(dispatcherConfig(), tg, email, nil, logger.NewNoOpLogger())
	msg := milestoneMessage("Backend Engineer", 42, 5, "https://app.example.com")

	delivered := d.Dispatch(context.Background(), fullRecipient(), msg)

	assert.True(t, delivered)
	assert.Equal(t, 1, email.calls)
}

func TestDispatch_AllChannelsFail(t *testing.T) {
	tg := &mockTelegramSender{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
			return errors.New("telegram down")
		},
	}
	email := &mockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("ses throttled")
		},
	}

	d := NewMultiChannelDispatcher(dispatcherConfig(), tg, email, nil, logger.NewNoOpLogger())
	msg := milestoneMessage("Backend Engineer", 42, 1, "https://app.example.com")

	delivered := d.Dispatch(context.Background(), fullRecipient(), msg)

	assert.False(t, delivered)
}

func TestDispatch_NoTelegramIDGoesStraightToEmail(t *testing.T) {
	tg := &mockTelegramSender{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
			t.Fatal("telegram should not be attempted without a TelegramID")
			return nil
		},
	}
	email := &mockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}

	recipient := fullRecipient()
	recipient.TelegramID = 0

	d := NewMultiChannelDispatcher(dispatcherConfig(), tg, email, nil, logger.NewNoOpLogger())
	delivered := d.Dispatch(context.Background(), recipient, acceptedMessage("Backend Engineer", "https://app.example.com"))

	assert.True(t, delivered)
	assert.Equal(t, 1, email.calls)
}

func TestDispatch_SMSOnBigMilestones(t *testing.T) {
	tests := []struct {
		name      string
		milestone int
		expectSMS bool
	}{
		{name: "below threshold", milestone: 20, expectSMS: false},
		{name: "at threshold", milestone: 50, expectSMS: true},
		{name: "above threshold", milestone: 100, expectSMS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := &mockTelegramSender{
				SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
					return nil
				},
			}
			sms := &mockSNSService{
				PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
					assert.Equal(t, "+15551234567", *params.PhoneNumber)
					return &sns.PublishOutput{}, nil
				},
			}

			d := NewMultiChannelDispatcher(dispatcherConfig(), tg, nil, sms, logger.NewNoOpLogger())
			msg := milestoneMessage("Backend Engineer", 42, tt.milestone, "https://app.example.com")

			delivered := d.Dispatch(context.Background(), fullRecipient(), msg)

			assert.True(t, delivered)
			if tt.expectSMS {
				assert.Equal(t, 1, sms.calls)
			} else {
				assert.Equal(t, 0, sms.calls)
			}
		})
	}
}

func TestDispatch_NoSMSForStatusChanges(t *testing.T) {
	tg := &mockTelegramSender{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error {
			return nil
		},
	}
	sms := &mockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{}, nil
		},
	}

	d := NewMultiChannelDispatcher(dispatcherConfig(), tg, nil, sms, logger.NewNoOpLogger())
	delivered := d.Dispatch(context.Background(), fullRecipient(), acceptedMessage("Backend Engineer", "https://app.example.com"))

	assert.True(t, delivered)
	assert.Equal(t, 0, sms.calls)
}
