package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Intent values for chat messages.
const (
	IntentQuestion = "question"
	IntentSummary  = "summary"
	IntentQuiz     = "quiz"
	IntentExplain  = "explain"
	IntentOther    = "other"
)

// ValidIntent reports whether s is one of the fixed intent values.
func ValidIntent(s string) bool {
	switch s {
	case IntentQuestion, IntentSummary, IntentQuiz, IntentExplain, IntentOther:
		return true
	}
	return false
}

// ChatMessage is one turn in a stored chat history. Sources reference
// Material ids that grounded the assistant's answer. Validation holds the
// opaque verdict produced by the response validator, if the client ran one.
type ChatMessage struct {
	Role       string          `json:"role"`
	Content    string          `json:"content"`
	Sources    []MaterialRef   `json:"sources,omitempty"`
	Intent     string          `json:"intent,omitempty"`
	Validation json.RawMessage `json:"validation,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ChatHistory is an ordered conversation owned by one user.
type ChatHistory struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
