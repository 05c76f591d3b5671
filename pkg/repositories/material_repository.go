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

// MaterialRepository provides data access for official course materials.
// Materials are read-only: they are published out of band and never updated.
type MaterialRepository interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error)
	ListCourses(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
}

type materialRepository struct {
	db *database.DB
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(db *database.DB) MaterialRepository {
	return &materialRepository{db: db}
}

var _ MaterialRepository = (*materialRepository)(nil)

func (r *materialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error) {
	query := `
		SELECT id, title, topic, week, category, course, file_url, content, created_at
		FROM materials
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = 0 OR week = $2)
		  AND ($3 = '' OR topic = $3)
		ORDER BY week, title`

	rows, err := r.db.Query(ctx, query, filter.Category, filter.Week, filter.Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m := &models.Material{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Topic, &m.Week, &m.Category,
			&m.Course, &m.FileURL, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read materials: %w", err)
	}

	return materials, nil
}

func (r *materialRepository) ListCourses(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT course FROM materials WHERE course <> '' ORDER BY course`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var course string
		if err := rows.Scan(&course); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	return courses, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	query := `
		SELECT id, title, topic, week, category, course, file_url, content, created_at
		FROM materials
		WHERE id = $1`

	m := &models.Material{}
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Title, &m.Topic, &m.Week,
		&m.Category, &m.Course, &m.FileURL, &m.Content, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	return m, nil
}
