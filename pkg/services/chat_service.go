package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/prompts"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// ChatTurn is one prior exchange turn supplied by the client.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatService answers questions grounded in one of the user's AI materials
// and runs the response validator.
type ChatService interface {
	// GroundedChat answers message using only the given material, replaying
	// the supplied history. The material must belong to userID.
	GroundedChat(ctx context.Context, userID string, materialID uuid.UUID, message string, history []ChatTurn) (string, error)

	// Evaluate assesses an assistant answer against the user's question and
	// returns the model's JSON verdict unmodified.
	Evaluate(ctx context.Context, userMessage, assistantContent string) (json.RawMessage, error)
}

type chatService struct {
	aiMaterialRepo repositories.AiMaterialRepository
	llmClient      llm.LLMClient
	logger         *zap.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(
	aiMaterialRepo repositories.AiMaterialRepository,
	llmClient llm.LLMClient,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		aiMaterialRepo: aiMaterialRepo,
		llmClient:      llmClient,
		logger:         logger,
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) GroundedChat(ctx context.Context, userID string, materialID uuid.UUID, message string, history []ChatTurn) (string, error) {
	material, err := s.aiMaterialRepo.GetByIDForUser(ctx, materialID, userID)
	if err != nil {
		return "", err
	}

	turns := make([]llm.Message, 0, len(history))
	for _, t := range history {
		if t.Role != models.RoleUser && t.Role != models.RoleAssistant {
			continue
		}
		turns = append(turns, llm.Message{Role: t.Role, Content: t.Content})
	}

	answer, err := s.llmClient.Complete(ctx, prompts.BuildGroundedChat(material, turns, message))
	if err != nil {
		s.logger.Warn("Grounded chat completion failed",
			zap.String("material_id", materialID.String()),
			zap.Error(err))
		return "", err
	}

	return answer, nil
}

func (s *chatService) Evaluate(ctx context.Context, userMessage, assistantContent string) (json.RawMessage, error) {
	verdict, err := s.llmClient.Critique(ctx,
		prompts.ValidationInstruction,
		prompts.BuildValidationContent(userMessage, assistantContent))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate response: %w", err)
	}
	return verdict, nil
}
