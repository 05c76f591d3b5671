package models

import (
	"time"

	"github.com/google/uuid"
)

// HandwrittenNote is an OCR-transcribed personal note.
// Content is always derived from RawContent via transcription at creation
// time; no note row exists without a successful transcription.
type HandwrittenNote struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	RawContent string    `json:"rawContent"`
	Course     string    `json:"course,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	ObjectName string    `json:"-"` // storage key of the uploaded image
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
