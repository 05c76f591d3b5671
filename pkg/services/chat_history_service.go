package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// maxTitleLen bounds derived chat titles.
const maxTitleLen = 80

// ChatHistoryService persists chat conversations on behalf of the client.
type ChatHistoryService interface {
	// SaveHistory stores a new conversation. An empty title is derived from
	// the first user message.
	SaveHistory(ctx context.Context, userID, title string, messages []models.ChatMessage) (*models.ChatHistory, error)

	// GetHistory returns one of the user's conversations.
	GetHistory(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error)

	// ListHistories returns the user's conversations, newest first.
	ListHistories(ctx context.Context, userID string) ([]*models.ChatHistory, error)

	// AppendMessages adds turns to an existing conversation.
	AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error
}

type chatHistoryService struct {
	historyRepo repositories.ChatHistoryRepository
	logger      *zap.Logger
}

// NewChatHistoryService creates a new ChatHistoryService.
func NewChatHistoryService(historyRepo repositories.ChatHistoryRepository, logger *zap.Logger) ChatHistoryService {
	return &chatHistoryService{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

var _ ChatHistoryService = (*chatHistoryService)(nil)

func (s *chatHistoryService) SaveHistory(ctx context.Context, userID, title string, messages []models.ChatMessage) (*models.ChatHistory, error) {
	if len(messages) == 0 {
		return nil, apperrors.Invalid("a chat history requires at least one message")
	}

	for i := range messages {
		if messages[i].Role != models.RoleUser && messages[i].Role != models.RoleAssistant {
			return nil, apperrors.Invalid("invalid message role %q", messages[i].Role)
		}
		if messages[i].Intent != "" && !models.ValidIntent(messages[i].Intent) {
			return nil, apperrors.Invalid("invalid message intent %q", messages[i].Intent)
		}
		if messages[i].Timestamp.IsZero() {
			messages[i].Timestamp = time.Now()
		}
	}

	if title == "" {
		title = deriveTitle(messages)
	}

	history := &models.ChatHistory{
		UserID:   userID,
		Title:    title,
		Messages: messages,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	s.logger.Debug("Saved chat history",
		zap.String("history_id", history.ID.String()),
		zap.Int("messages", len(messages)))

	return history, nil
}

func (s *chatHistoryService) GetHistory(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error) {
	return s.historyRepo.GetByIDForUser(ctx, id, userID)
}

func (s *chatHistoryService) ListHistories(ctx context.Context, userID string) ([]*models.ChatHistory, error) {
	return s.historyRepo.ListByUser(ctx, userID)
}

func (s *chatHistoryService) AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error {
	if len(messages) == 0 {
		return apperrors.Invalid("no messages to append")
	}
	for i := range messages {
		if messages[i].Timestamp.IsZero() {
			messages[i].Timestamp = time.Now()
		}
	}
	return s.historyRepo.AppendMessages(ctx, id, userID, messages)
}

// deriveTitle takes the first user message, truncated on a rune boundary.
func deriveTitle(messages []models.ChatMessage) string {
	for _, m := range messages {
		if m.Role != models.RoleUser || m.Content == "" {
			continue
		}
		title := m.Content
		if utf8.RuneCountInString(title) > maxTitleLen {
			runes := []rune(title)
			title = string(runes[:maxTitleLen])
		}
		return title
	}
	return "Untitled chat"
}
