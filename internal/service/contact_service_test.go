package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/service"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

type fakeContactRepo struct {
	created []domain.ContactSubmission
	err     error
}

func (f *fakeContactRepo) Create(_ context.Context, submission *domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	submission.ID = "sub-1"
	f.created = append(f.created, *submission)
	return nil
}

func (f *fakeContactRepo) List(_ context.Context) ([]domain.ContactSubmission, error) {
	return f.created, nil
}

func validContactInput() service.ContactInput {
	return service.ContactInput{
		Name:    "Jamie Doe",
		Email:   "Jamie@Example.com",
		Phone:   "555-0100",
		Service: "Studio Photography",
	}
}

func TestContactSubmitStoresAndPublishes(t *testing.T) {
	repo := &fakeContactRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventContactSubmitted, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	svc := service.NewContactService(repo, dispatcher, zap.NewNop())
	submission, err := svc.Submit(context.Background(), validContactInput())
	require.NoError(t, err)

	assert.Equal(t, "jamie@example.com", submission.Email)
	assert.Len(t, repo.created, 1)
	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.ContactSubmittedPayload)
	require.True(t, ok)
	assert.Equal(t, "Jamie Doe", payload.Submission.Name)
}

func TestContactSubmitMissingFields(t *testing.T) {
	svc := service.NewContactService(&fakeContactRepo{}, events.NewInMemoryDispatcher(), zap.NewNop())

	for _, mutate := range []func(*service.ContactInput){
		func(in *service.ContactInput) { in.Name = "  " },
		func(in *service.ContactInput) { in.Email = "" },
		func(in *service.ContactInput) { in.Phone = "" },
		func(in *service.ContactInput) { in.Service = "" },
	} {
		input := validContactInput()
		mutate(&input)

		_, err := svc.Submit(context.Background(), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	}
}

func TestContactSubmitRejectsBadEmail(t *testing.T) {
	svc := service.NewContactService(&fakeContactRepo{}, events.NewInMemoryDispatcher(), zap.NewNop())

	for _, email := range []string{"plainstring", "no-at.example.com", "spaces in@example.com", "missing@tld"} {
		input := validContactInput()
		input.Email = email

		_, err := svc.Submit(context.Background(), input)
		assert.Error(t, err, "email %q should be rejected", email)
	}
}

func TestContactSubmitOptionalFields(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := service.NewContactService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	submission, err := svc.Submit(context.Background(), validContactInput())
	require.NoError(t, err)
	assert.Nil(t, submission.Company)
	assert.Nil(t, submission.Message)

	input := validContactInput()
	input.Company = "Acme"
	input.Message = "  hello  "
	submission, err = svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, submission.Company)
	assert.Equal(t, "Acme", *submission.Company)
	require.NotNil(t, submission.Message)
	assert.Equal(t, "hello", *submission.Message)
}

// A broken notification handler must not surface to the visitor once the
// submission is stored.
func TestContactSubmitSurvivesHandlerFailure(t *testing.T) {
	repo := &fakeContactRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventContactSubmitted, func(context.Context, events.Event) error {
		return assert.AnError
	})

	svc := service.NewContactService(repo, dispatcher, zap.NewNop())
	_, err := svc.Submit(context.Background(), validContactInput())
	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestContactSubmitStorageFailure(t *testing.T) {
	repo := &fakeContactRepo{err: assert.AnError}
	svc := service.NewContactService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	_, err := svc.Submit(context.Background(), validContactInput())
	assert.Error(t, err)
}
