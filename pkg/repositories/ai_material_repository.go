package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/database"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
)

// AiMaterialRepository provides data access for AI-generated study materials.
// Ownership is folded into every lookup: a non-owner's query simply misses,
// so callers surface 404 rather than 403 and never leak the resource body.
type AiMaterialRepository interface {
	Create(ctx context.Context, material *models.AiMaterial) error
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.AiMaterial, error)
	ListByUser(ctx context.Context, userID string) ([]*models.AiMaterial, error)
}

type aiMaterialRepository struct {
	db *database.DB
}

// NewAiMaterialRepository creates a new AiMaterialRepository.
func NewAiMaterialRepository(db *database.DB) AiMaterialRepository {
	return &aiMaterialRepository{db: db}
}

var _ AiMaterialRepository = (*aiMaterialRepository)(nil)

func (r *aiMaterialRepository) Create(ctx context.Context, material *models.AiMaterial) error {
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	material.CreatedAt = time.Now()

	query := `
		INSERT INTO ai_materials (id, title, type, category, course, topic, content, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		material.ID, material.Title, material.Type, material.Category,
		material.Course, material.Topic, material.Content, material.UploadedBy,
		material.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ai material: %w", err)
	}

	return nil
}

func (r *aiMaterialRepository) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.AiMaterial, error) {
	query := `
		SELECT id, title, type, category, course, topic, content, uploaded_by, created_at
		FROM ai_materials
		WHERE id = $1 AND uploaded_by = $2`

	m := &models.AiMaterial{}
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&m.ID, &m.Title, &m.Type,
		&m.Category, &m.Course, &m.Topic, &m.Content, &m.UploadedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ai material: %w", err)
	}

	return m, nil
}

func (r *aiMaterialRepository) ListByUser(ctx context.Context, userID string) ([]*models.AiMaterial, error) {
	query := `
		SELECT id, title, type, category, course, topic, content, uploaded_by, created_at
		FROM ai_materials
		WHERE uploaded_by = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ai materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.AiMaterial
	for rows.Next() {
		m := &models.AiMaterial{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Type, &m.Category, &m.Course,
			&m.Topic, &m.Content, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ai material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ai materials: %w", err)
	}

	return materials, nil
}
