package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/models"
)

func TestMaterialsHandler_List_PassesFilter(t *testing.T) {
	var gotFilter models.MaterialFilter
	svc := &mockMaterialService{
		GetMaterialsFunc: func(ctx context.Context, filter models.MaterialFilter) ([]*models.Material, error) {
			gotFilter = filter
			return []*models.Material{{ID: uuid.New(), Title: "Week 3 slides", Course: "ML101"}}, nil
		},
	}
	handler := NewMaterialsHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/materials?category=lecture&week=3&topic=gradients", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MaterialFilter{Category: "lecture", Week: 3, Topic: "gradients"}, gotFilter)

	body := decodeBody(rec)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestMaterialsHandler_List_InvalidWeek(t *testing.T) {
	handler := NewMaterialsHandler(&mockMaterialService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/materials?week=soon", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterialsHandler_List_EmptyIsArray(t *testing.T) {
	handler := NewMaterialsHandler(&mockMaterialService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestMaterialsHandler_ListCourses_Idempotent(t *testing.T) {
	svc := &mockMaterialService{
		GetCoursesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Algorithms", "Calculus", "ML101"}, nil
		},
	}
	handler := NewMaterialsHandler(svc, zap.NewNop())

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/materials/courses", nil)
		rec := httptest.NewRecorder()
		handler.ListCourses(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Contains(t, bodies[0], `["Algorithms","Calculus","ML101"]`)
}
