package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// CommunityThread is a post with its replies and, when the post links a
// material, the reduced material projection.
type CommunityThread struct {
	Post     *models.CommunityPost    `json:"post"`
	Replies  []*models.CommunityReply `json:"replies"`
	Material *models.MaterialRef      `json:"material,omitempty"`
}

// CommunityService manages discussion posts and replies.
type CommunityService interface {
	// GetThread returns one post with its replies in chronological order.
	GetThread(ctx context.Context, postID uuid.UUID) (*CommunityThread, error)

	// ListPosts returns all posts, newest first, with reply counts.
	ListPosts(ctx context.Context) ([]*models.CommunityPost, error)

	// CreatePost publishes a new discussion post.
	CreatePost(ctx context.Context, post *models.CommunityPost) (*models.CommunityPost, error)

	// CreateReply adds a human-authored reply to an existing post.
	CreateReply(ctx context.Context, postID uuid.UUID, authorID, authorName, content string) (*models.CommunityReply, error)
}

type communityService struct {
	communityRepo repositories.CommunityRepository
	materialRepo  repositories.MaterialRepository
	logger        *zap.Logger
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(
	communityRepo repositories.CommunityRepository,
	materialRepo repositories.MaterialRepository,
	logger *zap.Logger,
) CommunityService {
	return &communityService{
		communityRepo: communityRepo,
		materialRepo:  materialRepo,
		logger:        logger,
	}
}

var _ CommunityService = (*communityService)(nil)

func (s *communityService) GetThread(ctx context.Context, postID uuid.UUID) (*CommunityThread, error) {
	post, err := s.communityRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	replies, err := s.communityRepo.ListReplies(ctx, postID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []*models.CommunityReply{}
	}

	thread := &CommunityThread{Post: post, Replies: replies}

	if post.MaterialID != nil {
		material, err := s.materialRepo.GetByID(ctx, *post.MaterialID)
		switch {
		case err == nil:
			thread.Material = material.Ref()
		case errors.Is(err, apperrors.ErrNotFound):
			// A post may outlive its linked material; serve the thread anyway.
			s.logger.Warn("Post links a missing material",
				zap.String("post_id", postID.String()),
				zap.String("material_id", post.MaterialID.String()))
		default:
			return nil, err
		}
	}

	return thread, nil
}

func (s *communityService) ListPosts(ctx context.Context) ([]*models.CommunityPost, error) {
	return s.communityRepo.ListPosts(ctx)
}

func (s *communityService) CreatePost(ctx context.Context, post *models.CommunityPost) (*models.CommunityPost, error) {
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Body) == "" {
		return nil, apperrors.Invalid("post title and body are required")
	}

	if err := s.communityRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Created community post",
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", post.AuthorID))

	return post, nil
}

func (s *communityService) CreateReply(ctx context.Context, postID uuid.UUID, authorID, authorName, content string) (*models.CommunityReply, error) {
	// The post must exist before a reply can attach to it.
	if _, err := s.communityRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	reply := &models.CommunityReply{
		PostID:     postID,
		AuthorID:   &authorID,
		AuthorName: authorName,
		Content:    content,
		IsBot:      false,
	}
	if err := s.communityRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}
