package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// LibraryService assembles a user's personal library from AI-generated
// materials and transcribed handwritten notes.
type LibraryService interface {
	// GetUserLibrary returns all library items owned by userID, newest first.
	GetUserLibrary(ctx context.Context, userID string) ([]*models.LibraryItem, error)
}

type libraryService struct {
	aiMaterialRepo repositories.AiMaterialRepository
	noteRepo       repositories.NoteRepository
	logger         *zap.Logger
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(
	aiMaterialRepo repositories.AiMaterialRepository,
	noteRepo repositories.NoteRepository,
	logger *zap.Logger,
) LibraryService {
	return &libraryService{
		aiMaterialRepo: aiMaterialRepo,
		noteRepo:       noteRepo,
		logger:         logger,
	}
}

var _ LibraryService = (*libraryService)(nil)

func (s *libraryService) GetUserLibrary(ctx context.Context, userID string) ([]*models.LibraryItem, error) {
	aiMaterials, err := s.aiMaterialRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LibraryItem, 0, len(aiMaterials)+len(notes))
	for _, m := range aiMaterials {
		items = append(items, models.LibraryItemFromAiMaterial(m))
	}
	for _, n := range notes {
		items = append(items, models.LibraryItemFromNote(n))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}
