package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/database"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
)

// VideoRepository provides data access for AI-generated video materials.
// Unlike notes and AI materials, video lookups return the row regardless of
// owner so the service can distinguish forbidden from missing.
type VideoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.VideoMaterial, error)
}

type videoRepository struct {
	db *database.DB
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(db *database.DB) VideoRepository {
	return &videoRepository{db: db}
}

var _ VideoRepository = (*videoRepository)(nil)

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VideoMaterial, error) {
	query := `
		SELECT id, status, video_url, error_message, duration, resolution,
		       aspect_ratio, generated_by, created_at, updated_at
		FROM video_materials
		WHERE id = $1`

	v := &models.VideoMaterial{}
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Status, &v.VideoURL,
		&v.ErrorMessage, &v.Duration, &v.Resolution, &v.AspectRatio,
		&v.GeneratedBy, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return v, nil
}
