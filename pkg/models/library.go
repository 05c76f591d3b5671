package models

import (
	"time"

	"github.com/google/uuid"
)

// Source kinds for the unified personal library listing.
const (
	LibrarySourceAI          = "ai"
	LibrarySourceHandwritten = "handwritten"
)

// LibraryItem is the tagged union returned by the unified my-materials
// listing. Source discriminates which entity the item was built from.
type LibraryItem struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Type      string    `json:"type,omitempty"`
	Category  string    `json:"category,omitempty"`
	Course    string    `json:"course,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LibraryItemFromAiMaterial builds the unified view of an AI material.
func LibraryItemFromAiMaterial(m *AiMaterial) *LibraryItem {
	return &LibraryItem{
		ID:        m.ID,
		Source:    LibrarySourceAI,
		Title:     m.Title,
		Type:      m.Type,
		Category:  m.Category,
		Course:    m.Course,
		Topic:     m.Topic,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// LibraryItemFromNote builds the unified view of a handwritten note.
func LibraryItemFromNote(n *HandwrittenNote) *LibraryItem {
	return &LibraryItem{
		ID:        n.ID,
		Source:    LibrarySourceHandwritten,
		Title:     n.Title,
		Course:    n.Course,
		Topic:     n.Topic,
		Content:   n.Content,
		ImageURL:  n.ImageURL,
		CreatedAt: n.CreatedAt,
	}
}
