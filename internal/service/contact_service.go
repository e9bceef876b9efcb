package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/repository"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactInput is a raw contact form submission.
type ContactInput struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	Service       string
	Budget        string
	Message       string
	PreferredDate string
	PreferredTime string
}

// ContactService validates and records contact form submissions.
type ContactService struct {
	repo       repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service.
func NewContactService(repo repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Submit validates, stores and announces one submission. Notification
// failures are the worker's problem; a stored submission always succeeds
// from the visitor's point of view.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactSubmission, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if name == "" || email == "" || phone == "" || input.Service == "" {
		return nil, apperrors.NewValidationError("name, email, phone, service required", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email format", nil)
	}

	submission := &domain.ContactSubmission{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Company:       optional(input.Company),
		Service:       input.Service,
		Budget:        optional(input.Budget),
		Message:       optional(strings.TrimSpace(input.Message)),
		PreferredDate: optional(input.PreferredDate),
		PreferredTime: optional(input.PreferredTime),
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info("contact form submission",
		zap.String("name", submission.Name),
		zap.String("email", submission.Email),
		zap.String("service", submission.Service))

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContactSubmitted,
		Timestamp: time.Now(),
		Payload:   events.ContactSubmittedPayload{Submission: *submission},
	}); err != nil {
		s.logger.Warn("contact event handlers failed", zap.Error(err))
	}
	return submission, nil
}

// List returns submissions for the admin dashboard, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	return s.repo.List(ctx)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
