package models

import (
	"time"

	"github.com/google/uuid"
)

// Video lifecycle states: pending until the generation backend reports a
// result, then ready or error.
const (
	VideoStatusPending = "pending"
	VideoStatusReady   = "ready"
	VideoStatusError   = "error"
)

// VideoMaterial tracks one AI-generated video. Only the owner may poll its
// status.
type VideoMaterial struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	ErrorMessage string    `json:"error,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	Resolution   string    `json:"resolution,omitempty"`
	AspectRatio  string    `json:"aspectRatio,omitempty"`
	GeneratedBy  string    `json:"generatedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VideoMetadata is the metadata block of the status response.
type VideoMetadata struct {
	Duration    float64 `json:"duration,omitempty"`
	Resolution  string  `json:"resolution,omitempty"`
	AspectRatio string  `json:"aspectRatio,omitempty"`
}

// Metadata returns the metadata block for status responses.
func (v *VideoMaterial) Metadata() VideoMetadata {
	return VideoMetadata{
		Duration:    v.Duration,
		Resolution:  v.Resolution,
		AspectRatio: v.AspectRatio,
	}
}
