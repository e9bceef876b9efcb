package service

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/config"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/mail"
)

// NotificationService turns domain events into outbound email. With no
// mail client configured it degrades to logging.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     *mail.Client
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer *mail.Client, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
	n.dispatcher.Subscribe(events.EventPortfolioItemCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventPortfolioItemDeleted, n.logEvent)
	n.dispatcher.Subscribe(events.EventContentUpdated, n.logEvent)
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		n.logger.Warn("unexpected contact event payload", zap.String("event_id", event.ID))
		return nil
	}
	submission := payload.Submission

	if n.mailer == nil {
		n.logger.Info("mail not configured; skipping contact notifications",
			zap.String("submission_id", submission.ID))
		return nil
	}

	if n.cfg.ContactEmail != "" {
		if err := n.mailer.Send(ctx, mail.Message{
			To:      []string{n.cfg.ContactEmail},
			Subject: fmt.Sprintf("New contact request - %s", submission.Name),
			HTML:    businessNotificationBody(submission),
		}); err != nil {
			n.logger.Error("business notification failed", zap.Error(err))
		}
	}

	if err := n.mailer.Send(ctx, mail.Message{
		To:      []string{submission.Email},
		Subject: "Request received",
		HTML:    clientConfirmationBody(submission),
	}); err != nil {
		n.logger.Error("client confirmation failed", zap.Error(err))
	}

	// Mail failures never propagate; the submission is already stored.
	return nil
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("actor", event.ActorEmail),
		zap.Any("payload", event.Payload))
	return nil
}

func businessNotificationBody(s domain.ContactSubmission) string {
	body := fmt.Sprintf(
		"<h2>New contact request</h2><p><b>Name:</b> %s<br><b>Email:</b> %s<br><b>Phone:</b> %s<br><b>Service:</b> %s</p>",
		html.EscapeString(s.Name),
		html.EscapeString(s.Email),
		html.EscapeString(s.Phone),
		html.EscapeString(s.Service),
	)
	if s.Message != nil {
		body += fmt.Sprintf("<p><b>Message:</b><br>%s</p>", html.EscapeString(*s.Message))
	}
	return body
}

func clientConfirmationBody(s domain.ContactSubmission) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for reaching out. We received your request about %s and will get back to you within 24 hours.</p>",
		html.EscapeString(s.Name),
		html.EscapeString(s.Service),
	)
}
