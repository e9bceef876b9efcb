package service

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/cache"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/repository"
	"github.com/Potism/studiomain/internal/storage"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

const galleryCacheKey = "studio:portfolio:public"

// galleryBuckets maps studio categories onto the buckets the gallery
// filters by. Unmapped categories land in photo.
var galleryBuckets = map[string]string{
	"Studio Photography":   "photo",
	"Product Photography":  "photo",
	"Commercial Video":     "video",
	"Event Photography":    "events",
	"Portrait Photography": "photo",
	"Brand Photography":    "photo",
	"Creative Content":     "social",
}

var slugPattern = regexp.MustCompile(`\s+`)

// GalleryItem is the public, gallery-ready view of a portfolio item.
type GalleryItem struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Type         domain.FileType `json:"type"`
	Src          string          `json:"src"`
	Description  string          `json:"description"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`
	IsFeatured   bool            `json:"is_featured"`
	SortOrder    int             `json:"sort_order"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	FileURL      string          `json:"original_file_url"`
}

// UploadInput carries one multipart upload.
type UploadInput struct {
	FileName    string
	ContentType string
	File        io.Reader
	Thumbnail   io.Reader
	Title       string
	Description string
	Category    string
}

// UpdateInput carries editable portfolio item fields.
type UpdateInput struct {
	ID          string
	Title       string
	Description string
	Category    string
	IsFeatured  bool
	SortOrder   int
}

// ImportFile describes one orphaned blob selected for bulk import.
type ImportFile struct {
	Pathname    string
	URL         string
	Size        int64
	Type        domain.FileType
	Title       string
	Description string
	Category    string
}

// PortfolioService owns portfolio items and their backing blobs.
type PortfolioService struct {
	repo       repository.PortfolioRepository
	blobs      storage.BlobStore
	cache      *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPortfolioService builds the service.
func NewPortfolioService(repo repository.PortfolioRepository, blobs storage.BlobStore, c *cache.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, blobs: blobs, cache: c, dispatcher: dispatcher, logger: logger}
}

// ListAdmin returns raw items for the admin dashboard.
func (s *PortfolioService) ListAdmin(ctx context.Context) ([]domain.PortfolioItem, error) {
	return s.repo.List(ctx)
}

// ListPublic returns the gallery view, cached between mutations. Video
// items expose their thumbnail as src so the grid never embeds raw video.
func (s *PortfolioService) ListPublic(ctx context.Context) ([]GalleryItem, error) {
	var cached []GalleryItem
	if hit, err := s.cache.GetJSON(ctx, galleryCacheKey, &cached); err != nil {
		s.logger.Warn("gallery cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	gallery := make([]GalleryItem, 0, len(items))
	for _, item := range items {
		gallery = append(gallery, toGalleryItem(item))
	}

	if err := s.cache.SetJSON(ctx, galleryCacheKey, gallery); err != nil {
		s.logger.Warn("gallery cache write failed", zap.Error(err))
	}
	return gallery, nil
}

// Upload stores the blob (and the optional video thumbnail), then inserts
// the portfolio row.
func (s *PortfolioService) Upload(ctx context.Context, actorEmail string, input UploadInput) (*domain.PortfolioItem, error) {
	if input.File == nil || input.Title == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("file, title, category required", nil)
	}

	fileType := fileTypeFor(input.ContentType)
	uniqueID := uuid.NewString()
	pathname := "portfolio/" + categorySlug(input.Category) + "/" + uniqueID + path.Ext(input.FileName)

	blob, err := s.blobs.Put(ctx, pathname, input.File)
	if err != nil {
		return nil, err
	}

	var thumbnailURL *string
	if input.Thumbnail != nil {
		thumbPath := "portfolio/" + categorySlug(input.Category) + "/thumbnails/" + uniqueID + "-thumbnail.jpg"
		thumbBlob, err := s.blobs.Put(ctx, thumbPath, input.Thumbnail)
		if err != nil {
			// The main blob is already stored; roll it back before failing.
			if delErr := s.blobs.Delete(ctx, pathname); delErr != nil {
				s.logger.Warn("orphaned blob after failed thumbnail", zap.String("pathname", pathname), zap.Error(delErr))
			}
			return nil, err
		}
		thumbnailURL = &thumbBlob.URL
	}

	item := &domain.PortfolioItem{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		FileURL:      blob.URL,
		FileType:     fileType,
		FileSize:     blob.Size,
		BlobPathname: pathname,
		ThumbnailURL: thumbnailURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if delErr := s.blobs.Delete(ctx, pathname); delErr != nil {
			s.logger.Warn("orphaned blob after failed insert", zap.String("pathname", pathname), zap.Error(delErr))
		}
		return nil, err
	}

	s.invalidateGallery(ctx)
	s.publishItemEvent(ctx, events.EventPortfolioItemCreated, actorEmail, item)
	return item, nil
}

// Update edits item metadata.
func (s *PortfolioService) Update(ctx context.Context, actorEmail string, input UpdateInput) (*domain.PortfolioItem, error) {
	if input.ID == "" || input.Title == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("id, title, category required", nil)
	}

	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	item.Title = input.Title
	item.Description = input.Description
	item.Category = input.Category
	item.IsFeatured = input.IsFeatured
	item.SortOrder = input.SortOrder

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateGallery(ctx)
	s.publishItemEvent(ctx, events.EventPortfolioItemUpdated, actorEmail, item)
	return item, nil
}

// Delete removes the blobs first, then the row.
func (s *PortfolioService) Delete(ctx context.Context, actorEmail, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.BlobPathname != "" {
		if err := s.blobs.Delete(ctx, item.BlobPathname); err != nil {
			return err
		}
	}
	if item.ThumbnailURL != nil {
		thumbPath := thumbnailPathname(item.BlobPathname)
		if err := s.blobs.Delete(ctx, thumbPath); err != nil {
			s.logger.Warn("thumbnail delete failed", zap.String("pathname", thumbPath), zap.Error(err))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateGallery(ctx)
	s.publishItemEvent(ctx, events.EventPortfolioItemDeleted, actorEmail, item)
	return nil
}

// ListImportable returns stored blobs not yet referenced by any item.
func (s *PortfolioService) ListImportable(ctx context.Context) ([]storage.BlobInfo, error) {
	blobs, err := s.blobs.List(ctx)
	if err != nil {
		return nil, err
	}
	urls, err := s.repo.ListFileURLs(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		known[url] = struct{}{}
	}

	available := make([]storage.BlobInfo, 0, len(blobs))
	for _, blob := range blobs {
		if _, exists := known[blob.URL]; !exists {
			available = append(available, blob)
		}
	}
	return available, nil
}

// Import registers already-stored blobs as portfolio items.
func (s *PortfolioService) Import(ctx context.Context, actorEmail string, files []ImportFile) ([]domain.PortfolioItem, error) {
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("no files selected", nil)
	}

	items := make([]*domain.PortfolioItem, 0, len(files))
	for _, file := range files {
		title := file.Title
		if title == "" {
			title = path.Base(file.Pathname)
		}
		category := file.Category
		if category == "" {
			category = "Studio Photography"
		}
		fileType := file.Type
		if fileType == "" {
			fileType = fileTypeForPathname(file.Pathname)
		}
		items = append(items, &domain.PortfolioItem{
			Title:        title,
			Description:  file.Description,
			Category:     category,
			FileURL:      file.URL,
			FileType:     fileType,
			FileSize:     file.Size,
			BlobPathname: file.Pathname,
		})
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	s.invalidateGallery(ctx)
	imported := make([]domain.PortfolioItem, 0, len(items))
	for _, item := range items {
		s.publishItemEvent(ctx, events.EventPortfolioItemCreated, actorEmail, item)
		imported = append(imported, *item)
	}
	return imported, nil
}

func (s *PortfolioService) invalidateGallery(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, galleryCacheKey); err != nil {
		s.logger.Warn("gallery cache invalidation failed", zap.Error(err))
	}
}

func (s *PortfolioService) publishItemEvent(ctx context.Context, eventType events.EventType, actorEmail string, item *domain.PortfolioItem) {
	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ActorEmail: actorEmail,
		Timestamp:  time.Now(),
		Payload: events.PortfolioItemPayload{
			ItemID:   item.ID,
			Title:    item.Title,
			Category: item.Category,
			FileType: item.FileType,
		},
	}); err != nil {
		s.logger.Warn("portfolio event handlers failed", zap.Error(err))
	}
}

func toGalleryItem(item domain.PortfolioItem) GalleryItem {
	bucket, ok := galleryBuckets[item.Category]
	if !ok {
		bucket = "photo"
	}

	src := item.FileURL
	if item.FileType == domain.FileTypeVideo && item.ThumbnailURL != nil {
		src = *item.ThumbnailURL
	}

	return GalleryItem{
		ID:           item.ID,
		Title:        item.Title,
		Category:     bucket,
		Type:         item.FileType,
		Src:          src,
		Description:  item.Description,
		Tags:         []string{item.Category},
		CreatedAt:    item.CreatedAt,
		IsFeatured:   item.IsFeatured,
		SortOrder:    item.SortOrder,
		ThumbnailURL: item.ThumbnailURL,
		FileURL:      item.FileURL,
	}
}

func categorySlug(category string) string {
	return strings.ToLower(slugPattern.ReplaceAllString(strings.TrimSpace(category), "-"))
}

func fileTypeFor(contentType string) domain.FileType {
	if strings.HasPrefix(contentType, "image/") {
		return domain.FileTypeImage
	}
	return domain.FileTypeVideo
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

func fileTypeForPathname(pathname string) domain.FileType {
	if _, ok := imageExtensions[strings.ToLower(path.Ext(pathname))]; ok {
		return domain.FileTypeImage
	}
	return domain.FileTypeVideo
}

func thumbnailPathname(blobPathname string) string {
	dir := path.Dir(blobPathname)
	base := strings.TrimSuffix(path.Base(blobPathname), path.Ext(blobPathname))
	return dir + "/thumbnails/" + base + "-thumbnail.jpg"
}
