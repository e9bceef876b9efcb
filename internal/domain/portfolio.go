package domain

import "time"

// FileType distinguishes stored media kinds.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// PortfolioItem is a single piece of published work backed by a stored blob.
type PortfolioItem struct {
	ID           string
	Title        string
	Description  string
	Category     string
	FileURL      string
	FileType     FileType
	FileSize     int64
	BlobPathname string
	ThumbnailURL *string
	IsFeatured   bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
