package events

import (
	"time"

	"github.com/Potism/studiomain/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactSubmitted     EventType = "contact_submitted"
	EventContentUpdated       EventType = "content_updated"
	EventPortfolioItemCreated EventType = "portfolio_item_created"
	EventPortfolioItemUpdated EventType = "portfolio_item_updated"
	EventPortfolioItemDeleted EventType = "portfolio_item_deleted"
)

// Event represents a domain event emitted by services. ActorEmail is empty
// for events raised by anonymous visitors (contact submissions).
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ActorEmail string      `json:"actor_email,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Submission domain.ContactSubmission `json:"submission"`
}

// ContentUpdatedPayload payload.
type ContentUpdatedPayload struct {
	Section string `json:"section"`
	Key     string `json:"key"`
}

// PortfolioItemPayload payload shared by portfolio events.
type PortfolioItemPayload struct {
	ItemID   string          `json:"item_id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	FileType domain.FileType `json:"file_type"`
}
