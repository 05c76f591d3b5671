package models

import (
	"time"

	"github.com/google/uuid"
)

// CommunityPost is a discussion thread item. MaterialID optionally links the
// thread to one Material. Mentions are free-form tags; they are not validated
// against real accounts. CreatedAt is immutable.
type CommunityPost struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	MaterialID *uuid.UUID `json:"materialId,omitempty"`
	Mentions   []string   `json:"mentions,omitempty"`
	Course     string     `json:"course,omitempty"`
	ReplyCount int        `json:"replyCount,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CommunityReply belongs to one CommunityPost. Replies may be human- or
// bot-authored. Invariant: AuthorID is nil iff IsBot; Sources are only
// meaningful on bot replies.
type CommunityReply struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"postId"`
	AuthorID   *string   `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	IsBot      bool      `json:"isBot"`
	Sources    []string  `json:"sources,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ValidAuthor reports whether the author fields satisfy the bot invariant.
func (r *CommunityReply) ValidAuthor() bool {
	if r.IsBot {
		return r.AuthorID == nil
	}
	return r.AuthorID != nil
}
