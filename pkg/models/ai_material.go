package models

import (
	"time"

	"github.com/google/uuid"
)

// Type values for AI-generated materials.
const (
	AiMaterialTypeSummary    = "summary"
	AiMaterialTypeFlashcards = "flashcards"
	AiMaterialTypeQuiz       = "quiz"
	AiMaterialTypeNotes      = "notes"
)

// AiMaterial is a user-generated study artifact produced via the AI pipeline.
// Only the owning user may read it; ownership is folded into every lookup
// filter, so a non-owner sees a miss rather than a forbidden resource.
type AiMaterial struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Category   string    `json:"category,omitempty"`
	Course     string    `json:"course,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	Content    string    `json:"content"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
