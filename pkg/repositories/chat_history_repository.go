package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/database"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
)

// ChatHistoryRepository provides data access for stored chat conversations.
// Messages are kept as a single ordered JSONB document per conversation.
type ChatHistoryRepository interface {
	Create(ctx context.Context, history *models.ChatHistory) error
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ChatHistory, error)
	AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error
}

type chatHistoryRepository struct {
	db *database.DB
}

// NewChatHistoryRepository creates a new ChatHistoryRepository.
func NewChatHistoryRepository(db *database.DB) ChatHistoryRepository {
	return &chatHistoryRepository{db: db}
}

var _ ChatHistoryRepository = (*chatHistoryRepository)(nil)

func (r *chatHistoryRepository) Create(ctx context.Context, history *models.ChatHistory) error {
	if history.ID == uuid.Nil {
		history.ID = uuid.New()
	}
	now := time.Now()
	history.CreatedAt = now
	history.UpdatedAt = now

	messagesJSON, err := json.Marshal(history.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	query := `
		INSERT INTO chat_histories (id, user_id, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.Exec(ctx, query,
		history.ID, history.UserID, history.Title, messagesJSON,
		history.CreatedAt, history.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat history: %w", err)
	}

	return nil
}

func (r *chatHistoryRepository) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM chat_histories
		WHERE id = $1 AND user_id = $2`

	h := &models.ChatHistory{}
	var messagesJSON []byte
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&h.ID, &h.UserID, &h.Title,
		&messagesJSON, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	if err := json.Unmarshal(messagesJSON, &h.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	return h, nil
}

func (r *chatHistoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.ChatHistory, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM chat_histories
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat histories: %w", err)
	}
	defer rows.Close()

	var histories []*models.ChatHistory
	for rows.Next() {
		h := &models.ChatHistory{}
		var messagesJSON []byte
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &messagesJSON,
			&h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat history: %w", err)
		}
		if err := json.Unmarshal(messagesJSON, &h.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat histories: %w", err)
	}

	return histories, nil
}

// AppendMessages appends messages to an existing conversation's JSONB
// document. Ownership is part of the update filter, so a non-owner append
// reports not found.
func (r *chatHistoryRepository) AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error {
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	query := `
		UPDATE chat_histories
		SET messages = messages || $3::jsonb, updated_at = $4
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID, messagesJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
