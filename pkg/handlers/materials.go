package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// MaterialsHandler handles official course material HTTP requests.
type MaterialsHandler struct {
	materialService services.MaterialService
	logger          *zap.Logger
}

// NewMaterialsHandler creates a new materials handler.
func NewMaterialsHandler(materialService services.MaterialService, logger *zap.Logger) *MaterialsHandler {
	return &MaterialsHandler{
		materialService: materialService,
		logger:          logger,
	}
}

// RegisterRoutes registers the materials handler's routes on the given mux.
// Material browsing is public.
func (h *MaterialsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/materials", h.List)
	mux.HandleFunc("GET /api/materials/courses", h.ListCourses)
}

// List handles GET /api/materials
func (h *MaterialsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.MaterialFilter{
		Category: r.URL.Query().Get("category"),
		Topic:    r.URL.Query().Get("topic"),
	}
	if week := r.URL.Query().Get("week"); week != "" {
		n, err := strconv.Atoi(week)
		if err != nil || n < 0 {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_week", "week must be a non-negative integer"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.Week = n
	}

	materials, err := h.materialService.GetMaterials(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list materials", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_materials_failed", "Failed to list materials"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if materials == nil {
		materials = []*models.Material{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: materials}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListCourses handles GET /api/materials/courses
func (h *MaterialsHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.materialService.GetCourses(r.Context())
	if err != nil {
		h.logger.Error("Failed to list courses", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_courses_failed", "Failed to list courses"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if courses == nil {
		courses = []string{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: courses}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
