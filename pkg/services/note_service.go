package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/prompts"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
	"github.com/studyhall-inc/studyhall-engine/pkg/storage"
)

// NoteUpload carries one uploaded handwritten-note image and its metadata.
type NoteUpload struct {
	Title    string
	Course   string
	Topic    string
	FileName string
	Data     []byte
}

// NoteService runs the handwritten-note pipeline: transcribe the uploaded
// image with the vision model, archive the image, and persist the note.
type NoteService interface {
	// CreateFromImage transcribes and stores a note. Nothing is persisted if
	// transcription fails.
	CreateFromImage(ctx context.Context, userID string, upload NoteUpload) (*models.HandwrittenNote, error)

	// GetNote returns one of the user's notes.
	GetNote(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error)

	// DeleteNote removes one of the user's notes and its archived image.
	DeleteNote(ctx context.Context, id uuid.UUID, userID string) error
}

type noteService struct {
	noteRepo  repositories.NoteRepository
	llmClient llm.LLMClient
	store     storage.ObjectStore
	logger    *zap.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(
	noteRepo repositories.NoteRepository,
	llmClient llm.LLMClient,
	store storage.ObjectStore,
	logger *zap.Logger,
) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		llmClient: llmClient,
		store:     store,
		logger:    logger,
	}
}

var _ NoteService = (*noteService)(nil)

func (s *noteService) CreateFromImage(ctx context.Context, userID string, upload NoteUpload) (*models.HandwrittenNote, error) {
	if len(upload.Data) == 0 {
		return nil, apperrors.Invalid("empty image upload")
	}

	dataURL := imageDataURL(upload.FileName, upload.Data)

	// Transcription runs before any write so a vision failure leaves no
	// partial note or orphaned object behind.
	content, err := s.llmClient.TranscribeImage(ctx, dataURL, prompts.TranscriptionInstruction)
	if err != nil {
		s.logger.Error("Note transcription failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to transcribe note image: %w", err)
	}

	objectName, imageURL, err := s.store.UploadNoteImage(ctx, userID, upload.FileName,
		bytes.NewReader(upload.Data), int64(len(upload.Data)))
	if err != nil {
		return nil, fmt.Errorf("failed to archive note image: %w", err)
	}

	note := &models.HandwrittenNote{
		Title:      upload.Title,
		Content:    content,
		RawContent: content,
		Course:     upload.Course,
		Topic:      upload.Topic,
		ImageURL:   imageURL,
		ObjectName: objectName,
		UploadedBy: userID,
	}
	if note.Title == "" {
		note.Title = strings.TrimSuffix(upload.FileName, filepath.Ext(upload.FileName))
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		// Best effort: the note row failed, so the archived image is orphaned.
		if delErr := s.store.DeleteObject(ctx, objectName); delErr != nil {
			s.logger.Warn("Failed to clean up orphaned note image",
				zap.String("object", objectName),
				zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Created handwritten note",
		zap.String("note_id", note.ID.String()),
		zap.String("user_id", userID))

	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error) {
	return s.noteRepo.GetByIDForUser(ctx, id, userID)
}

func (s *noteService) DeleteNote(ctx context.Context, id uuid.UUID, userID string) error {
	note, err := s.noteRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.DeleteForUser(ctx, id, userID); err != nil {
		return err
	}

	if note.ObjectName != "" {
		if err := s.store.DeleteObject(ctx, note.ObjectName); err != nil {
			s.logger.Warn("Failed to delete note image",
				zap.String("object", note.ObjectName),
				zap.Error(err))
		}
	}

	return nil
}

// imageDataURL encodes the upload as a base64 data URL for the vision model.
func imageDataURL(fileName string, data []byte) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
