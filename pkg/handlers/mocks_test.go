package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/auth"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

// authedRequest returns the request with claims for userID in its context,
// as the auth middleware would have left them.
func authedRequest(r *http.Request, userID string) *http.Request {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Name:             "Test User",
	}
	ctx := context.WithValue(r.Context(), auth.ClaimsKey, claims)
	return r.WithContext(ctx)
}

// allowAuthService accepts every request as the given subject.
type allowAuthService struct {
	subject string
}

func (s *allowAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: s.subject}}, "token", nil
}

func (s *allowAuthService) RequireSubject(claims *auth.Claims) error {
	return nil
}

// denyAuthService rejects every request.
type denyAuthService struct{}

func (s *denyAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	return nil, "", auth.ErrMissingAuthorization
}

func (s *denyAuthService) RequireSubject(claims *auth.Claims) error {
	return auth.ErrMissingSubject
}

func denyMiddleware() *auth.Middleware {
	return auth.NewMiddleware(&denyAuthService{}, zap.NewNop())
}

func allowMiddleware(subject string) *auth.Middleware {
	return auth.NewMiddleware(&allowAuthService{subject: subject}, zap.NewNop())
}

// decodeBody decodes a recorded JSON response body into a map.
func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil
	}
	return body
}

// Service mocks. Set the function fields to control behavior; unset fields
// return zero values. Call counters verify that rejected requests do no work.

type mockMaterialService struct {
	GetMaterialsFunc func(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error)
	GetCoursesFunc   func(ctx context.Context) ([]string, error)
}

func (m *mockMaterialService) GetMaterials(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error) {
	if m.GetMaterialsFunc != nil {
		return m.GetMaterialsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockMaterialService) GetCourses(ctx context.Context) ([]string, error) {
	if m.GetCoursesFunc != nil {
		return m.GetCoursesFunc(ctx)
	}
	return nil, nil
}

var _ services.MaterialService = (*mockMaterialService)(nil)

type mockLibraryService struct {
	GetUserLibraryFunc func(ctx context.Context, userID string) ([]*models.LibraryItem, error)
	Calls              int
}

func (m *mockLibraryService) GetUserLibrary(ctx context.Context, userID string) ([]*models.LibraryItem, error) {
	m.Calls++
	if m.GetUserLibraryFunc != nil {
		return m.GetUserLibraryFunc(ctx, userID)
	}
	return nil, nil
}

var _ services.LibraryService = (*mockLibraryService)(nil)

type mockNoteService struct {
	CreateFromImageFunc func(ctx context.Context, userID string, upload services.NoteUpload) (*models.HandwrittenNote, error)
	GetNoteFunc         func(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error)
	DeleteNoteFunc      func(ctx context.Context, id uuid.UUID, userID string) error

	CreateCalls int
	GetCalls    int
	DeleteCalls int
}

func (m *mockNoteService) CreateFromImage(ctx context.Context, userID string, upload services.NoteUpload) (*models.HandwrittenNote, error) {
	m.CreateCalls++
	if m.CreateFromImageFunc != nil {
		return m.CreateFromImageFunc(ctx, userID, upload)
	}
	return &models.HandwrittenNote{ID: uuid.New(), UploadedBy: userID}, nil
}

func (m *mockNoteService) GetNote(ctx context.Context, id uuid.UUID, userID string) (*models.HandwrittenNote, error) {
	m.GetCalls++
	if m.GetNoteFunc != nil {
		return m.GetNoteFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteService) DeleteNote(ctx context.Context, id uuid.UUID, userID string) error {
	m.DeleteCalls++
	if m.DeleteNoteFunc != nil {
		return m.DeleteNoteFunc(ctx, id, userID)
	}
	return nil
}

var _ services.NoteService = (*mockNoteService)(nil)

type mockChatService struct {
	GroundedChatFunc func(ctx context.Context, userID string, materialID uuid.UUID, message string, history []services.ChatTurn) (string, error)
	EvaluateFunc     func(ctx context.Context, userMessage, assistantContent string) (json.RawMessage, error)

	ChatCalls     int
	EvaluateCalls int
}

func (m *mockChatService) GroundedChat(ctx context.Context, userID string, materialID uuid.UUID, message string, history []services.ChatTurn) (string, error) {
	m.ChatCalls++
	if m.GroundedChatFunc != nil {
		return m.GroundedChatFunc(ctx, userID, materialID, message, history)
	}
	return "", nil
}

func (m *mockChatService) Evaluate(ctx context.Context, userMessage, assistantContent string) (json.RawMessage, error) {
	m.EvaluateCalls++
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, userMessage, assistantContent)
	}
	return json.RawMessage(`{}`), nil
}

var _ services.ChatService = (*mockChatService)(nil)

type mockChatHistoryService struct {
	SaveHistoryFunc    func(ctx context.Context, userID, title string, messages []models.ChatMessage) (*models.ChatHistory, error)
	GetHistoryFunc     func(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error)
	ListHistoriesFunc  func(ctx context.Context, userID string) ([]*models.ChatHistory, error)
	AppendMessagesFunc func(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error
}

func (m *mockChatHistoryService) SaveHistory(ctx context.Context, userID, title string, messages []models.ChatMessage) (*models.ChatHistory, error) {
	if m.SaveHistoryFunc != nil {
		return m.SaveHistoryFunc(ctx, userID, title, messages)
	}
	return &models.ChatHistory{ID: uuid.New(), UserID: userID, Title: title, Messages: messages}, nil
}

func (m *mockChatHistoryService) GetHistory(ctx context.Context, id uuid.UUID, userID string) (*models.ChatHistory, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockChatHistoryService) ListHistories(ctx context.Context, userID string) ([]*models.ChatHistory, error) {
	if m.ListHistoriesFunc != nil {
		return m.ListHistoriesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockChatHistoryService) AppendMessages(ctx context.Context, id uuid.UUID, userID string, messages []models.ChatMessage) error {
	if m.AppendMessagesFunc != nil {
		return m.AppendMessagesFunc(ctx, id, userID, messages)
	}
	return nil
}

var _ services.ChatHistoryService = (*mockChatHistoryService)(nil)

type mockCommunityService struct {
	GetThreadFunc   func(ctx context.Context, postID uuid.UUID) (*services.CommunityThread, error)
	ListPostsFunc   func(ctx context.Context) ([]*models.CommunityPost, error)
	CreatePostFunc  func(ctx context.Context, post *models.CommunityPost) (*models.CommunityPost, error)
	CreateReplyFunc func(ctx context.Context, postID uuid.UUID, authorID, authorName, content string) (*models.CommunityReply, error)

	ReplyCalls int
}

func (m *mockCommunityService) GetThread(ctx context.Context, postID uuid.UUID) (*services.CommunityThread, error) {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(ctx, postID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCommunityService) ListPosts(ctx context.Context) ([]*models.CommunityPost, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCommunityService) CreatePost(ctx context.Context, post *models.CommunityPost) (*models.CommunityPost, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, post)
	}
	post.ID = uuid.New()
	return post, nil
}

func (m *mockCommunityService) CreateReply(ctx context.Context, postID uuid.UUID, authorID, authorName, content string) (*models.CommunityReply, error) {
	m.ReplyCalls++
	if m.CreateReplyFunc != nil {
		return m.CreateReplyFunc(ctx, postID, authorID, authorName, content)
	}
	return &models.CommunityReply{ID: uuid.New(), PostID: postID, AuthorID: &authorID, AuthorName: authorName, Content: content}, nil
}

var _ services.CommunityService = (*mockCommunityService)(nil)

type mockVideoService struct {
	GetStatusFunc func(ctx context.Context, id uuid.UUID, userID string) (*models.VideoMaterial, error)
	Calls         int
}

func (m *mockVideoService) GetStatus(ctx context.Context, id uuid.UUID, userID string) (*models.VideoMaterial, error) {
	m.Calls++
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, id, userID)
	}
	return nil, apperrors.ErrNotFound
}

var _ services.VideoService = (*mockVideoService)(nil)

// mockPinger implements DatabasePinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) PingWithTimeout(ctx context.Context, timeout time.Duration) error {
	return m.err
}

var _ DatabasePinger = (*mockPinger)(nil)
