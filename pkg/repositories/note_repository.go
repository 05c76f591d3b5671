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

// NoteRepository provides data access for handwritten notes.
// Ownership is folded into every lookup filter.
type NoteRepository interface {
	Create(ctx context.Context, note *models.HandwrittenNote) error
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error)
	ListByUser(ctx context.Context, userID string) ([]*models.HandwrittenNote, error)
	DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error
}

type noteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *database.DB) NoteRepository {
	return &noteRepository{db: db}
}

var _ NoteRepository = (*noteRepository)(nil)

func (r *noteRepository) Create(ctx context.Context, note *models.HandwrittenNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	note.CreatedAt = time.Now()

	query := `
		INSERT INTO handwritten_notes
			(id, title, content, raw_content, course, topic, image_url, object_name, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		note.ID, note.Title, note.Content, note.RawContent, note.Course,
		note.Topic, note.ImageURL, note.ObjectName, note.UploadedBy, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error) {
	query := `
		SELECT id, title, content, raw_content, course, topic, image_url, object_name, uploaded_by, created_at
		FROM handwritten_notes
		WHERE id = $1 AND uploaded_by = $2`

	n := &models.HandwrittenNote{}
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&n.ID, &n.Title, &n.Content,
		&n.RawContent, &n.Course, &n.Topic, &n.ImageURL, &n.ObjectName,
		&n.UploadedBy, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return n, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID string) ([]*models.HandwrittenNote, error) {
	query := `
		SELECT id, title, content, raw_content, course, topic, image_url, object_name, uploaded_by, created_at
		FROM handwritten_notes
		WHERE uploaded_by = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.HandwrittenNote
	for rows.Next() {
		n := &models.HandwrittenNote{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.RawContent, &n.Course,
			&n.Topic, &n.ImageURL, &n.ObjectName, &n.UploadedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return notes, nil
}

func (r *noteRepository) DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM handwritten_notes WHERE id = $1 AND uploaded_by = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
