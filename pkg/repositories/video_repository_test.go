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

func seedVideo(t *testing.T, db *testhelpers.EngineDB, status, videoURL, errorMessage, generatedBy string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.DB.QueryRow(context.Background(), `
		INSERT INTO video_materials (status, video_url, error_message, duration, resolution, aspect_ratio, generated_by)
		VALUES ($1, $2, $3, 92.5, '1920x1080', '16:9', $4)
		RETURNING id`,
		status, videoURL, errorMessage, generatedBy,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestVideoRepository_GetByID(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewVideoRepository(engineDB.DB)
	ctx := context.Background()

	id := seedVideo(t, engineDB, models.VideoStatusReady, "https://cdn.example.com/v/1.mp4", "", "user-video-1")

	video, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusReady, video.Status)
	assert.Equal(t, "https://cdn.example.com/v/1.mp4", video.VideoURL)
	assert.Equal(t, "user-video-1", video.GeneratedBy)
	assert.Equal(t, 92.5, video.Duration)
	assert.Equal(t, "1920x1080", video.Resolution)
	assert.Equal(t, "16:9", video.AspectRatio)
}

func TestVideoRepository_GetByID_ErrorState(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewVideoRepository(engineDB.DB)
	ctx := context.Background()

	id := seedVideo(t, engineDB, models.VideoStatusError, "", "generation backend timed out", "user-video-2")

	video, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusError, video.Status)
	assert.Empty(t, video.VideoURL)
	assert.Equal(t, "generation backend timed out", video.ErrorMessage)
}

func TestVideoRepository_GetByID_NotFound(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewVideoRepository(engineDB.DB)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
