package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/repositories"
)

// Configurable repository mocks. Set the function fields to control
// behavior; unset fields return zero values.

type mockMaterialRepo struct {
	ListFunc        func(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error)
	ListCoursesFunc func(ctx context.Context) ([]string, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.Material, error)
}

func (m *mockMaterialRepo) List(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockMaterialRepo) ListCourses(ctx context.Context) ([]string, error) {
	if m.ListCoursesFunc != nil {
		return m.ListCoursesFunc(ctx)
	}
	return nil, nil
}

func (m *mockMaterialRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

var _ repositories.MaterialRepository = (*mockMaterialRepo)(nil)

type mockAiMaterialRepo struct {
	CreateFunc         func(ctx context.Context, material *models.AiMaterial) error
	GetByIDForUserFunc func(ctx context.Context, id uuid.UUID, userID string) (*models.AiMaterial, error)
	ListByUserFunc     func(ctx context.Context, userID string) ([]*models.AiMaterial, error)
}

func (m *mockAiMaterialRepo) Create(ctx context.Context, material *models.AiMaterial) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, material)
	}
	return nil
}

func (m *mockAiMaterialRepo) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.AiMaterial, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAiMaterialRepo) ListByUser(ctx context.Context, userID string) ([]*models.AiMaterial, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

var _ repositories.AiMaterialRepository = (*mockAiMaterialRepo)(nil)

type mockNoteRepo struct {
	CreateFunc         func(ctx context.Context, note *models.HandwrittenNote) error
	GetByIDForUserFunc func(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error)
	ListByUserFunc     func(ctx context.Context, userID string) ([]*models.HandwrittenNote, error)
	DeleteForUserFunc  func(ctx context.Context, id uuid.UUID, userID string) error

	CreateCalls int
	DeleteCalls int
}

func (m *mockNoteRepo) Create(ctx context.Context, note *models.HandwrittenNote) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	note.ID = uuid.New()
	return nil
}

func (m *mockNoteRepo) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteRepo) ListByUser(ctx context.Context, userID string) ([]*models.HandwrittenNote, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockNoteRepo) DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error {
	m.DeleteCalls++
	if m.DeleteForUserFunc != nil {
		return m.DeleteForUserFunc(ctx, id, userID)
	}
	return nil
}

var _ repositories.NoteRepository = (*mockNoteRepo)(nil)

type mockChatHistoryRepo struct {
	CreateFunc         func(ctx context.Context, history *models.ChatHistory) error
	GetByIDForUserFunc func(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error)
	ListByUserFunc     func(ctx context.Context, userID string) ([]*models.ChatHistory, error)
	AppendMessagesFunc func(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error
}

func (m *mockChatHistoryRepo) Create(ctx context.Context, history *models.ChatHistory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, history)
	}
	history.ID = uuid.New()
	return nil
}

func (m *mockChatHistoryRepo) GetByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockChatHistoryRepo) ListByUser(ctx context.Context, userID string) ([]*models.ChatHistory, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockChatHistoryRepo) AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error {
	if m.AppendMessagesFunc != nil {
		return m.AppendMessagesFunc(ctx, id, userID, messages)
	}
	return nil
}

var _ repositories.ChatHistoryRepository = (*mockChatHistoryRepo)(nil)

type mockCommunityRepo struct {
	CreatePostFunc  func(ctx context.Context, post *models.CommunityPost) error
	GetPostFunc     func(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error)
	ListPostsFunc   func(ctx context.Context) ([]*models.CommunityPost, error)
	CreateReplyFunc func(ctx context.Context, reply *models.CommunityReply) error
	ListRepliesFunc func(ctx context.Context, postID uuid.UUID) ([]*models.CommunityReply, error)
}

func (m *mockCommunityRepo) CreatePost(ctx context.Context, post *models.CommunityPost) error {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, post)
	}
	post.ID = uuid.New()
	return nil
}

func (m *mockCommunityRepo) GetPost(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCommunityRepo) ListPosts(ctx context.Context) ([]*models.CommunityPost, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCommunityRepo) CreateReply(ctx context.Context, reply *models.CommunityReply) error {
	if m.CreateReplyFunc != nil {
		return m.CreateReplyFunc(ctx, reply)
	}
	reply.ID = uuid.New()
	return nil
}

func (m *mockCommunityRepo) ListReplies(ctx context.Context, postID uuid.UUID) ([]*models.CommunityReply, error) {
	if m.ListRepliesFunc != nil {
		return m.ListRepliesFunc(ctx, postID)
	}
	return nil, nil
}

var _ repositories.CommunityRepository = (*mockCommunityRepo)(nil)

type mockVideoRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.VideoMaterial, error)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VideoMaterial, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

var _ repositories.VideoRepository = (*mockVideoRepo)(nil)
