package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// VideoStatusResponse for GET /videos/{id}/status.
type VideoStatusResponse struct {
	ID       uuid.UUID            `json:"id"`
	Status   string               `json:"status"`
	VideoURL string               `json:"videoUrl,omitempty"`
	Error    string               `json:"error,omitempty"`
	Metadata models.VideoMetadata `json:"metadata"`
}

// VideosHandler handles AI-generated video HTTP requests.
type VideosHandler struct {
	videoService services.VideoService
	logger       *zap.Logger
}

// NewVideosHandler creates a new videos handler.
func NewVideosHandler(videoService services.VideoService, logger *zap.Logger) *VideosHandler {
	return &VideosHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// RegisterRoutes registers the videos handler's routes on the given mux.
func (h *VideosHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/videos/{id}/status", authMiddleware.RequireAuth(h.Status))
}

// Status handles GET /api/videos/{id}/status
func (h *VideosHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	videoID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_video_id", "Invalid video ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	video, err := h.videoService.GetStatus(r.Context(), videoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			if err := ErrorResponse(w, http.StatusNotFound, "video_not_found", "Video not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrForbidden):
			if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Unauthorized"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		default:
			h.logger.Error("Failed to get video status",
				zap.String("video_id", videoID.String()),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "video_status_failed", "Failed to get video status"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
		return
	}

	response := VideoStatusResponse{
		ID:       video.ID,
		Status:   video.Status,
		VideoURL: video.VideoURL,
		Error:    video.ErrorMessage,
		Metadata: video.Metadata(),
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
