//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/testhelpers"
)

func TestNoteRepository_RoundTrip(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewNoteRepository(engineDB.DB)
	ctx := context.Background()

	note := &models.HandwrittenNote{
		Title:      "Lecture 5 notes",
		Content:    "# Lecture 5\n\ncleaned text",
		RawContent: "# Lecture 5\n\nraw text",
		Course:     "ML101",
		Topic:      "backprop",
		ImageURL:   "http://storage/notes/owner-1/scan.jpg",
		ObjectName: "notes/owner-1/scan.jpg",
		UploadedBy: "owner-1",
	}
	require.NoError(t, repo.Create(ctx, note))
	require.NotEqual(t, uuid.Nil, note.ID)

	got, err := repo.GetByIDForUser(ctx, note.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, note.Content, got.Content)
	assert.Equal(t, note.RawContent, got.RawContent)
	assert.Equal(t, note.ObjectName, got.ObjectName)
	assert.Equal(t, "owner-1", got.UploadedBy)
}

func TestNoteRepository_NonOwnerSeesMiss(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewNoteRepository(engineDB.DB)
	ctx := context.Background()

	note := &models.HandwrittenNote{Title: "private", Content: "c", RawContent: "c", UploadedBy: "owner-2"}
	require.NoError(t, repo.Create(ctx, note))

	_, err := repo.GetByIDForUser(ctx, note.ID, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNoteRepository_ListByUser_NewestFirst(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewNoteRepository(engineDB.DB)
	ctx := context.Background()

	userID := "owner-" + uuid.NewString()
	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.HandwrittenNote{
			Title: title, Content: "c", RawContent: "c", UploadedBy: userID,
		}))
	}

	notes, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for i := 1; i < len(notes); i++ {
		assert.False(t, notes[i-1].CreatedAt.Before(notes[i].CreatedAt))
	}
}

func TestNoteRepository_DeleteForUser(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewNoteRepository(engineDB.DB)
	ctx := context.Background()

	note := &models.HandwrittenNote{Title: "doomed", Content: "c", RawContent: "c", UploadedBy: "owner-3"}
	require.NoError(t, repo.Create(ctx, note))

	assert.ErrorIs(t, repo.DeleteForUser(ctx, note.ID, "not-the-owner"), apperrors.ErrNotFound)

	require.NoError(t, repo.DeleteForUser(ctx, note.ID, "owner-3"))
	_, err := repo.GetByIDForUser(ctx, note.ID, "owner-3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
