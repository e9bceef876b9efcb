package dto

import "time"

// PortfolioUpdateRequest payload for metadata edits.
type PortfolioUpdateRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsFeatured  bool   `json:"is_featured"`
	SortOrder   int    `json:"sort_order"`
}

// ImportFileRequest selects one stored blob for bulk import.
type ImportFileRequest struct {
	Pathname    string `json:"pathname"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ImportRequest payload for bulk import.
type ImportRequest struct {
	Files []ImportFileRequest `json:"files"`
}

// PortfolioItemResponse mirrors a stored item.
type PortfolioItemResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	BlobPathname string    `json:"blob_pathname"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	IsFeatured   bool      `json:"is_featured"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
