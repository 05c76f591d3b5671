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

// CommunityRepository provides data access for discussion posts and replies.
type CommunityRepository interface {
	CreatePost(ctx context.Context, post *models.CommunityPost) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error)
	ListPosts(ctx context.Context) ([]*models.CommunityPost, error)
	CreateReply(ctx context.Context, reply *models.CommunityReply) error
	ListReplies(ctx context.Context, postID uuid.UUID) ([]*models.CommunityReply, error)
}

type communityRepository struct {
	db *database.DB
}

// NewCommunityRepository creates a new CommunityRepository.
func NewCommunityRepository(db *database.DB) CommunityRepository {
	return &communityRepository{db: db}
}

var _ CommunityRepository = (*communityRepository)(nil)

func (r *communityRepository) CreatePost(ctx context.Context, post *models.CommunityPost) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO community_posts (id, title, body, author_id, author_name, material_id, mentions, course, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Body, post.AuthorID, post.AuthorName,
		post.MaterialID, post.Mentions, post.Course, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *communityRepository) GetPost(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error) {
	query := `
		SELECT id, title, body, author_id, author_name, material_id, mentions, course, created_at
		FROM community_posts
		WHERE id = $1`

	p := &models.CommunityPost{}
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Body,
		&p.AuthorID, &p.AuthorName, &p.MaterialID, &p.Mentions, &p.Course, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

func (r *communityRepository) ListPosts(ctx context.Context) ([]*models.CommunityPost, error) {
	query := `
		SELECT p.id, p.title, p.body, p.author_id, p.author_name, p.material_id,
		       p.mentions, p.course, p.created_at,
		       (SELECT count(*) FROM community_replies WHERE post_id = p.id) AS reply_count
		FROM community_posts p
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.CommunityPost
	for rows.Next() {
		p := &models.CommunityPost{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.AuthorID, &p.AuthorName,
			&p.MaterialID, &p.Mentions, &p.Course, &p.CreatedAt, &p.ReplyCount); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func (r *communityRepository) CreateReply(ctx context.Context, reply *models.CommunityReply) error {
	if !reply.ValidAuthor() {
		return fmt.Errorf("reply author fields violate the bot invariant")
	}

	if reply.ID == uuid.Nil {
		reply.ID = uuid.New()
	}
	reply.CreatedAt = time.Now()

	query := `
		INSERT INTO community_replies (id, post_id, author_id, author_name, content, is_bot, sources, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		reply.ID, reply.PostID, reply.AuthorID, reply.AuthorName,
		reply.Content, reply.IsBot, reply.Sources, reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}

	return nil
}

// ListReplies returns a post's replies in non-decreasing creation-time order.
func (r *communityRepository) ListReplies(ctx context.Context, postID uuid.UUID) ([]*models.CommunityReply, error) {
	query := `
		SELECT id, post_id, author_id, author_name, content, is_bot, sources, created_at
		FROM community_replies
		WHERE post_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	var replies []*models.CommunityReply
	for rows.Next() {
		reply := &models.CommunityReply{}
		if err := rows.Scan(&reply.ID, &reply.PostID, &reply.AuthorID, &reply.AuthorName,
			&reply.Content, &reply.IsBot, &reply.Sources, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read replies: %w", err)
	}

	return replies, nil
}
