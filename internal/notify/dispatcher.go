// internal/notify/dispatcher.go
package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/metrics"
	"telegram-jobboard/internal/common/telegram"
)

// Recipient is the addressing info for one user across channels. Zero
// values mean the channel is unavailable for this recipient.
type Recipient struct {
	UserID     int64
	TelegramID int64
	Email      string
	Phone      string
}

// Dispatcher delivers a message over whatever channels apply. It reports
// delivery success as a boolean and never returns an error: callers decide
// what success means for their own bookkeeping, not why delivery failed.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipient Recipient, msg Message) bool
}

// TelegramSender matches telegram.Client.
type TelegramSender interface {
	SendMessage(ctx context.Context, chatID int64, text string, button *telegram.InlineButton) error
}

// EmailSender matches aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SMSSender matches aws.SNSClient.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// DispatcherConfig selects the secondary channels. Telegram is always the
// primary channel when the recipient has a TelegramID.
type DispatcherConfig struct {
	EmailEnabled bool
	FromEmail    string
	SMSEnabled   bool
	// Milestone value at or above which milestone messages also go out by
	// SMS.
	SMSMilestoneThreshold int
}

// MultiChannelDispatcher sends over Telegram first, falls back to email
// when Telegram is unavailable or fails, and adds SMS for big milestones.
// Any nil sender disables its channel.
type MultiChannelDispatcher struct {
	config   *DispatcherConfig
	telegram TelegramSender
	email    EmailSender
	sms      SMSSender
	logger   logger.Logger
}

func NewMultiChannelDispatcher(config *DispatcherConfig, tg TelegramSender, email EmailSender, sms SMSSender, log logger.Logger) *MultiChannelDispatcher {
	return &MultiChannelDispatcher{
		config:   config,
		telegram: tg,
		email:    email,
		sms:      sms,
		logger:   log.WithFields(map[string]interface{}{"component": "notification-dispatcher"}),
	}
}

func (d *MultiChannelDispatcher) Dispatch(ctx context.Context, recipient Recipient, msg Message) bool {
	notificationID := uuid.New().String()
	log := d.logger.WithFields(map[string]interface{}{
		"notification_id": notificationID,
		"user_id":         recipient.UserID,
		"type":            string(msg.Type),
	})

	delivered := false

	if d.telegram != nil && recipient.TelegramID != 0 {
		if d.sendTelegram(ctx, recipient, msg, log) {
			delivered = true
		}
	}

	if !delivered && d.config.EmailEnabled && d.email != nil && recipient.Email != "" {
		if d.sendEmail(ctx, recipient, msg, log) {
			delivered = true
		}
	}

	// SMS is additive, only for milestone messages past the threshold.
	if msg.Type == TypeMilestone && d.config.SMSEnabled && d.sms != nil &&
		recipient.Phone != "" && msg.Milestone >= d.config.SMSMilestoneThreshold {
		d.sendSMS(ctx, recipient, msg, log)
	}

	if !delivered {
		log.Warn("notification not delivered on any channel", nil)
	}

	return delivered
}

func (d *MultiChannelDispatcher) sendTelegram(ctx context.Context, recipient Recipient, msg Message, log logger.Logger) bool {
	var button *telegram.InlineButton
	if msg.ButtonText != "" && msg.ButtonURL != "" {
		button = &telegram.InlineButton{Text: msg.ButtonText, URL: msg.ButtonURL}
	}

	if err := d.telegram.SendMessage(ctx, recipient.TelegramID, msg.Text, button); err != nil {
		log.WithError(err).Warn("telegram delivery failed", nil)
		metrics.NotificationsFailed.WithLabelValues("telegram", string(msg.Type)).Inc()
		return false
	}

	log.Info("telegram notification sent", nil)
	metrics.NotificationsSent.WithLabelValues("telegram", string(msg.Type)).Inc()
	return true
}

func (d *MultiChannelDispatcher) sendEmail(ctx context.Context, recipient Recipient, msg Message, log logger.Logger) bool {
	input := &ses.SendEmailInput{
		Source: aws.String(d.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{recipient.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Text)},
			},
		},
	}

	if _, err := d.email.SendEmail(ctx, input); err != nil {
		log.WithError(err).Warn("email delivery failed", nil)
		metrics.NotificationsFailed.WithLabelValues("email", string(msg.Type)).Inc()
		return false
	}

	log.Info("email notification sent", nil)
	metrics.NotificationsSent.WithLabelValues("email", string(msg.Type)).Inc()
	return true
}

func (d *MultiChannelDispatcher) sendSMS(ctx context.Context, recipient Recipient, msg Message, log logger.Logger) {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(recipient.Phone),
		Message:     aws.String(msg.Subject),
	}

	if _, err := d.sms.Publish(ctx, input); err != nil {
		log.WithError(err).Warn("sms delivery failed", nil)
		metrics.NotificationsFailed.WithLabelValues("sms", string(msg.Type)).Inc()
		return
	}

	log.Info("sms notification sent", nil)
	metrics.NotificationsSent.WithLabelValues("sms", string(msg.Type)).Inc()
}
