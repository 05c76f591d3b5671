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
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// CreatePostRequest for POST /community.
type CreatePostRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	MaterialID string   `json:"materialId,omitempty"`
	Mentions   []string `json:"mentions,omitempty"`
	Course     string   `json:"course,omitempty"`
}

// CreateReplyRequest for POST /community/{id}/replies.
type CreateReplyRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName,omitempty"`
}

// CommunityHandler handles discussion post and reply HTTP requests.
type CommunityHandler struct {
	communityService services.CommunityService
	logger           *zap.Logger
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(communityService services.CommunityService, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		logger:           logger,
	}
}

// RegisterRoutes registers the community handler's routes on the given mux.
func (h *CommunityHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/community", authMiddleware.RequireAuth(h.ListPosts))
	mux.HandleFunc("POST /api/community", authMiddleware.RequireAuth(h.CreatePost))
	mux.HandleFunc("GET /api/community/{id}", authMiddleware.RequireAuth(h.GetThread))
	mux.HandleFunc("POST /api/community/{id}/replies", authMiddleware.RequireAuth(h.CreateReply))
}

// ListPosts handles GET /api/community
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.communityService.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list community posts", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_posts_failed", "Failed to list posts"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if posts == nil {
		posts = []*models.CommunityPost{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: posts}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreatePost handles POST /api/community
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_fields", "title and body are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	post := &models.CommunityPost{
		Title:      req.Title,
		Body:       req.Body,
		AuthorID:   userID,
		AuthorName: auth.GetDisplayNameFromContext(r.Context()),
		Mentions:   req.Mentions,
		Course:     req.Course,
	}
	if req.MaterialID != "" {
		materialID, err := uuid.Parse(req.MaterialID)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_material_id", "Invalid material ID"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		post.MaterialID = &materialID
	}

	created, err := h.communityService.CreatePost(r.Context(), post)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			if err := ErrorResponse(w, http.StatusBadRequest, "missing_fields", "title and body are required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create community post", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "create_post_failed", "Failed to create post"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetThread handles GET /api/community/{id}
func (h *CommunityHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_post_id", "Invalid post ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	thread, err := h.communityService.GetThread(r.Context(), postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "post_not_found", "Post not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get community thread",
			zap.String("post_id", postID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_thread_failed", "Failed to get post"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: thread}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateReply handles POST /api/community/{id}/replies
func (h *CommunityHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_post_id", "Invalid post ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_content", "Reply content is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	authorName := req.AuthorName
	if authorName == "" {
		authorName = auth.GetDisplayNameFromContext(r.Context())
	}

	reply, err := h.communityService.CreateReply(r.Context(), postID, userID, authorName, req.Content)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "post_not_found", "Post not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create reply",
			zap.String("post_id", postID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "create_reply_failed", "Failed to create reply"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: reply}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
