package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/apperrors"
	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/services"
)

func chatRequest(body string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/ai-materials/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return authedRequest(req, userID)
}

func TestAiChatHandler_Chat(t *testing.T) {
	materialID := uuid.New()
	svc := &mockChatService{
		GroundedChatFunc: func(ctx context.Context, userID string, id uuid.UUID, message string, history []services.ChatTurn) (string, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, materialID, id)
			assert.Equal(t, "What is a pivot?", message)
			require.Len(t, history, 2)
			return "A pivot is the partition element.", nil
		},
	}
	handler := NewAiChatHandler(svc, zap.NewNop())

	body := `{"materialId":"` + materialID.String() + `","message":"What is a pivot?","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`
	rec := httptest.NewRecorder()

	handler.Chat(rec, chatRequest(body, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"response":"A pivot is the partition element."`)
}

func TestAiChatHandler_Chat_SafetyFiltered(t *testing.T) {
	svc := &mockChatService{
		GroundedChatFunc: func(ctx context.Context, userID string, id uuid.UUID, message string, history []services.ChatTurn) (string, error) {
			return "", llm.NewError(llm.ErrorTypeSafety, "blocked by content filter", false, nil)
		},
	}
	handler := NewAiChatHandler(svc, zap.NewNop())

	body := `{"materialId":"` + uuid.NewString() + `","message":"something"}`
	rec := httptest.NewRecorder()

	handler.Chat(rec, chatRequest(body, "user-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	respBody := decodeBody(rec)
	assert.Equal(t, "Your message was blocked by the safety filter. Please rephrase.", respBody["error"])
}

func TestAiChatHandler_Chat_MaterialNotFound(t *testing.T) {
	svc := &mockChatService{
		GroundedChatFunc: func(ctx context.Context, userID string, id uuid.UUID, message string, history []services.ChatTurn) (string, error) {
			return "", apperrors.ErrNotFound
		},
	}
	handler := NewAiChatHandler(svc, zap.NewNop())

	body := `{"materialId":"` + uuid.NewString() + `","message":"hello"}`
	rec := httptest.NewRecorder()

	handler.Chat(rec, chatRequest(body, "user-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAiChatHandler_Chat_UpstreamFailure(t *testing.T) {
	svc := &mockChatService{
		GroundedChatFunc: func(ctx context.Context, userID string, id uuid.UUID, message string, history []services.ChatTurn) (string, error) {
			return "", llm.NewError(llm.ErrorTypeRateLimit, "rate limited", true, nil)
		},
	}
	handler := NewAiChatHandler(svc, zap.NewNop())

	body := `{"materialId":"` + uuid.NewString() + `","message":"hello"}`
	rec := httptest.NewRecorder()

	handler.Chat(rec, chatRequest(body, "user-1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAiChatHandler_Chat_Validation(t *testing.T) {
	svc := &mockChatService{}
	handler := NewAiChatHandler(svc, zap.NewNop())

	cases := []struct {
		name string
		body string
	}{
		{"missing message", `{"materialId":"` + uuid.NewString() + `"}`},
		{"missing material id", `{"message":"hello"}`},
		{"bad material id", `{"materialId":"nope","message":"hello"}`},
		{"malformed body", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Chat(rec, chatRequest(tc.body, "user-1"))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Equal(t, 0, svc.ChatCalls)
}

func TestAiChatHandler_Evaluate(t *testing.T) {
	svc := &mockChatService{
		EvaluateFunc: func(ctx context.Context, userMessage, assistantContent string) (json.RawMessage, error) {
			assert.Equal(t, "What is Big-O?", userMessage)
			assert.Equal(t, "An asymptotic bound.", assistantContent)
			return json.RawMessage(`{"relevant":true}`), nil
		},
	}
	handler := NewAiChatHandler(svc, zap.NewNop())

	body := `{"userMessage":"What is Big-O?","assistantContent":"An asymptotic bound."}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/chat/evaluate", strings.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Evaluate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation":{"relevant":true}`)
}

func TestAiChatHandler_Evaluate_MissingFields(t *testing.T) {
	svc := &mockChatService{}
	handler := NewAiChatHandler(svc, zap.NewNop())

	for _, body := range []string{
		`{"userMessage":"question"}`,
		`{"assistantContent":"answer"}`,
		`{}`,
	} {
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/chat/evaluate", strings.NewReader(body)), "user-1")
		rec := httptest.NewRecorder()

		handler.Evaluate(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		respBody := decodeBody(rec)
		assert.Equal(t, "userMessage and assistantContent are required", respBody["error"])
	}
	assert.Equal(t, 0, svc.EvaluateCalls)
}

func TestAiChatHandler_RequiresIdentity(t *testing.T) {
	svc := &mockChatService{}
	handler := NewAiChatHandler(svc, zap.NewNop())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, denyMiddleware())

	for _, path := range []string{"/api/ai-materials/chat", "/api/chat/evaluate"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.Equal(t, 0, svc.ChatCalls)
	assert.Equal(t, 0, svc.EvaluateCalls)
}
