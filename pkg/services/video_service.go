package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// VideoService exposes the status of AI-generated videos to their owners.
type VideoService interface {
	// GetStatus returns the video when userID owns it. A non-owner gets
	// apperrors.ErrForbidden; the lookup deliberately does not fold ownership
	// into the query so existence is acknowledged.
	GetStatus(ctx context.Context, id uuid.UUID, userID string) (*models.VideoMaterial, error)
}

type videoService struct {
	videoRepo repositories.VideoRepository
	logger    *zap.Logger
}

// NewVideoService creates a new VideoService.
func NewVideoService(videoRepo repositories.VideoRepository, logger *zap.Logger) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		logger:    logger,
	}
}

var _ VideoService = (*videoService)(nil)

func (s *videoService) GetStatus(ctx context.Context, id uuid.UUID, userID string) (*models.VideoMaterial, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if video.GeneratedBy != userID {
		return nil, apperrors.ErrForbidden
	}

	return video, nil
}
