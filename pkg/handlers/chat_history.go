package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// SaveChatHistoryRequest for POST /chat-history.
type SaveChatHistoryRequest struct {
	Title    string               `json:"title,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
}

// AppendMessagesRequest for POST /chat-history/{id}/messages.
type AppendMessagesRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

// ChatHistoryHandler handles stored conversation HTTP requests.
type ChatHistoryHandler struct {
	historyService services.ChatHistoryService
	logger         *zap.Logger
}

// NewChatHistoryHandler creates a new chat history handler.
func NewChatHistoryHandler(historyService services.ChatHistoryService, logger *zap.Logger) *ChatHistoryHandler {
	return &ChatHistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// RegisterRoutes registers the chat history handler's routes on the given mux.
func (h *ChatHistoryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/chat-history", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/chat-history", authMiddleware.RequireAuth(h.Save))
	mux.HandleFunc("GET /api/chat-history/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/chat-history/{id}/messages", authMiddleware.RequireAuth(h.Append))
}

// List handles GET /api/chat-history
func (h *ChatHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	histories, err := h.historyService.ListHistories(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list chat histories",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_histories_failed", "Failed to list chat histories"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if histories == nil {
		histories = []*models.ChatHistory{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: histories}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Save handles POST /api/chat-history
func (h *ChatHistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req SaveChatHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	history, err := h.historyService.SaveHistory(r.Context(), userID, req.Title, req.Messages)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_history", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to save chat history",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "save_history_failed", "Failed to save chat history"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: history}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Append handles POST /api/chat-history/{id}/messages
func (h *ChatHistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	historyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_history_id", "Invalid chat history ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AppendMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.historyService.AppendMessages(r.Context(), historyID, userID, req.Messages); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_messages", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrNotFound):
			if err := ErrorResponse(w, http.StatusNotFound, "history_not_found", "Chat history not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		default:
			h.logger.Error("Failed to append chat messages",
				zap.String("user_id", userID),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "append_messages_failed", "Failed to append chat messages"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Messages appended"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/chat-history/{id}
func (h *ChatHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	historyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_history_id", "Invalid chat history ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	history, err := h.historyService.GetHistory(r.Context(), historyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "history_not_found", "Chat history not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get chat history", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_history_failed", "Failed to get chat history"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: history}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
