package models

import (
	"time"

	"github.com/google/uuid"
)

// Material represents an official, shared course document.
// Materials are immutable once published: there is no update path.
type Material struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Week      int       `json:"week"`
	Category  string    `json:"category"`
	Course    string    `json:"course"`
	FileURL   string    `json:"fileUrl,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaterialRef is the reduced projection of a Material embedded in community
// post responses and chat sources.
type MaterialRef struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Topic   string    `json:"topic,omitempty"`
	Course  string    `json:"course,omitempty"`
	FileURL string    `json:"fileUrl,omitempty"`
}

// Ref returns the reduced projection of the material.
func (m *Material) Ref() *MaterialRef {
	return &MaterialRef{
		ID:      m.ID,
		Title:   m.Title,
		Topic:   m.Topic,
		Course:  m.Course,
		FileURL: m.FileURL,
	}
}

// MaterialFilter narrows material listings. Zero-value fields are ignored.
type MaterialFilter struct {
	Category string
	Week     int
	Topic    string
}
