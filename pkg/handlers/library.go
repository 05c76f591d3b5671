package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// LibraryHandler serves the caller's unified personal library.
type LibraryHandler struct {
	libraryService services.LibraryService
	logger         *zap.Logger
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(libraryService services.LibraryService, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
		logger:         logger,
	}
}

// RegisterRoutes registers the library handler's routes on the given mux.
func (h *LibraryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/my-materials", authMiddleware.RequireAuth(h.List))
}

// List handles GET /api/my-materials
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	items, err := h.libraryService.GetUserLibrary(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load user library",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_library_failed", "Failed to load materials"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if items == nil {
		items = []*models.LibraryItem{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: items}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
