package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// safetyFilterMessage is the fixed client-facing text for safety-filtered
// chat requests.
const safetyFilterMessage = "Your message was blocked by the safety filter. Please rephrase."

// ChatRequest for POST /ai-materials/chat.
type ChatRequest struct {
	MaterialID string              `json:"materialId"`
	Message    string              `json:"message"`
	History    []services.ChatTurn `json:"history,omitempty"`
}

// ChatResponse for POST /ai-materials/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// EvaluateRequest for POST /chat/evaluate.
type EvaluateRequest struct {
	UserMessage      string `json:"userMessage"`
	AssistantContent string `json:"assistantContent"`
}

// EvaluateResponse for POST /chat/evaluate.
type EvaluateResponse struct {
	Validation json.RawMessage `json:"validation"`
}

// AiChatHandler handles grounded chat and response validation requests.
type AiChatHandler struct {
	chatService services.ChatService
	logger      *zap.Logger
}

// NewAiChatHandler creates a new AI chat handler.
func NewAiChatHandler(chatService services.ChatService, logger *zap.Logger) *AiChatHandler {
	return &AiChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// RegisterRoutes registers the AI chat handler's routes on the given mux.
func (h *AiChatHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/ai-materials/chat", authMiddleware.RequireAuth(h.Chat))
	mux.HandleFunc("POST /api/chat/evaluate", authMiddleware.RequireAuth(h.Evaluate))
}

// Chat handles POST /api/ai-materials/chat
func (h *AiChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_message", "message is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_material_id", "materialId is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	answer, err := h.chatService.GroundedChat(r.Context(), userID, materialID, req.Message, req.History)
	if err != nil {
		h.writeChatError(w, materialID, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: ChatResponse{Response: answer}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeChatError maps grounded-chat failures onto the error taxonomy: missing
// material → 404, safety-filtered → 400 with a fixed message, anything else
// → 500 with the upstream message.
func (h *AiChatHandler) writeChatError(w http.ResponseWriter, materialID uuid.UUID, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := ErrorResponse(w, http.StatusNotFound, "material_not_found", "Material not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case llm.IsSafetyFiltered(err):
		if err := ErrorResponse(w, http.StatusBadRequest, "safety_filtered", safetyFilterMessage); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error("Grounded chat failed",
			zap.String("material_id", materialID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "chat_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

// Evaluate handles POST /api/chat/evaluate
func (h *AiChatHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.UserMessage) == "" || strings.TrimSpace(req.AssistantContent) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_fields", "userMessage and assistantContent are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	verdict, err := h.chatService.Evaluate(r.Context(), req.UserMessage, req.AssistantContent)
	if err != nil {
		h.logger.Error("Response validation failed", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "evaluate_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: EvaluateResponse{Validation: verdict}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
