package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// MaterialService provides read access to official course materials.
type MaterialService interface {
	// GetMaterials returns materials matching the filter.
	GetMaterials(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error)

	// GetCourses returns the sorted distinct course names.
	GetCourses(ctx context.Context) ([]string, error)
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	logger       *zap.Logger
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(materialRepo repositories.MaterialRepository, logger *zap.Logger) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

var _ MaterialService = (*materialService)(nil)

func (s *materialService) GetMaterials(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error) {
	return s.materialRepo.List(ctx, filter)
}

func (s *materialService) GetCourses(ctx context.Context) ([]string, error) {
	courses, err := s.materialRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	// The query orders by course already; sort again so the contract does
	// not depend on collation details of the database.
	sort.Strings(courses)
	return courses, nil
}
