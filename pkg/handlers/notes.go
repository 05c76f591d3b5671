package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// NoteCreatedResponse for POST /handwritten-notes.
type NoteCreatedResponse struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	RawText string    `json:"rawText"`
}

// NotesHandler handles handwritten-note HTTP requests.
type NotesHandler struct {
	noteService    services.NoteService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(noteService services.NoteService, maxUploadBytes int64, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		noteService:    noteService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes registers the notes handler's routes on the given mux.
func (h *NotesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/handwritten-notes", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/handwritten-notes/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("DELETE /api/handwritten-notes/{id}", authMiddleware.RequireAuth(h.Delete))
}

// Create handles POST /api/handwritten-notes
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_upload", "A multipart image upload is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_file", "file is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded note image", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "process_image_failed", "Failed to process image"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	note, err := h.noteService.CreateFromImage(r.Context(), userID, services.NoteUpload{
		Title:    r.FormValue("title"),
		Course:   r.FormValue("course"),
		Topic:    r.FormValue("topic"),
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		h.logger.Error("Handwritten note pipeline failed",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "process_image_failed", "Failed to process image"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := NoteCreatedResponse{
		ID:      note.ID,
		Text:    note.Content,
		RawText: note.RawContent,
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/handwritten-notes/{id}
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteRequest(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(r.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "note_not_found", "Note not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get note", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_note_failed", "Failed to get note"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: note}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/handwritten-notes/{id}
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteRequest(w, r)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), noteID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "note_not_found", "Note not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to delete note", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "delete_note_failed", "Failed to delete note"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Note deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// noteRequest extracts the caller identity and the {id} path value.
func (h *NotesHandler) noteRequest(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Unauthorized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return "", uuid.Nil, false
	}

	noteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_note_id", "Invalid note ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return "", uuid.Nil, false
	}

	return userID, noteID, true
}
