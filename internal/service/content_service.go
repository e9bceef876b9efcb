package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/cache"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/repository"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

const contentCacheKey = "studio:content"

// ContentService reads and edits site copy.
type ContentService struct {
	repo       repository.ContentRepository
	cache      *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContentService builds the service.
func NewContentService(repo repository.ContentRepository, c *cache.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *ContentService {
	return &ContentService{repo: repo, cache: c, dispatcher: dispatcher, logger: logger}
}

// Get returns copy as a nested section -> key -> value map, cached between
// edits.
func (s *ContentService) Get(ctx context.Context) (domain.ContentMap, error) {
	var cached domain.ContentMap
	if hit, err := s.cache.GetJSON(ctx, contentCacheKey, &cached); err != nil {
		s.logger.Warn("content cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	content := domain.ContentMap{}
	for _, entry := range entries {
		if content[entry.Section] == nil {
			content[entry.Section] = map[string]string{}
		}
		content[entry.Section][entry.Key] = entry.Value
	}

	if err := s.cache.SetJSON(ctx, contentCacheKey, content); err != nil {
		s.logger.Warn("content cache write failed", zap.Error(err))
	}
	return content, nil
}

// Update upserts one (section, key) pair on behalf of the acting admin.
func (s *ContentService) Update(ctx context.Context, actorEmail, section, key, value string) error {
	if section == "" || key == "" {
		return apperrors.NewValidationError("section and key required", nil)
	}

	entry := &domain.ContentEntry{
		Section:   section,
		Key:       key,
		Value:     value,
		UpdatedBy: actorEmail,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, contentCacheKey); err != nil {
		s.logger.Warn("content cache invalidation failed", zap.Error(err))
	}

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventContentUpdated,
		ActorEmail: actorEmail,
		Timestamp:  time.Now(),
		Payload:    events.ContentUpdatedPayload{Section: section, Key: key},
	}); err != nil {
		s.logger.Warn("content event handlers failed", zap.Error(err))
	}
	return nil
}
