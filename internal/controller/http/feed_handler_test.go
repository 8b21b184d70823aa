package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectly/internal/entity"
	"connectly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFeedUseCase struct {
	mock.Mock
}

func (m *MockFeedUseCase) GetFeed(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error) {
	args := m.Called(ctx, viewerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedPage), args.Error(1)
}

func setupFeedRouter(uc FeedUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewFeedHandler(uc, logger.New())
	r.GET("/api/feed", func(c *gin.Context) {
		c.Set("user_id", "viewer-1")
		c.Set("role", "user")
	}, handler.GetFeed)
	return r
}

func TestGetFeedResponseShape(t *testing.T) {
	uc := new(MockFeedUseCase)
	next := 2
	uc.On("GetFeed", mock.Anything, "viewer-1", 1).Return(&entity.FeedPage{
		Results: []entity.FeedPost{{ID: "p1", AuthorUsername: "alice"}},
		Next:    &next,
		Count:   15,
	}, nil)

	r := setupFeedRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "results")
	assert.Contains(t, body, "next")
	assert.Contains(t, body, "previous")
	assert.Contains(t, body, "count")
	assert.Equal(t, "null", string(body["previous"]))
	assert.Equal(t, "2", string(body["next"]))
	assert.Equal(t, "15", string(body["count"]))
	uc.AssertExpectations(t)
}

func TestGetFeedPageParam(t *testing.T) {
	uc := new(MockFeedUseCase)
	uc.On("GetFeed", mock.Anything, "viewer-1", 3).Return(&entity.FeedPage{Results: []entity.FeedPost{}}, nil)

	r := setupFeedRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/feed?page=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestGetFeedMalformedPageDefaultsToFirst(t *testing.T) {
	uc := new(MockFeedUseCase)
	uc.On("GetFeed", mock.Anything, "viewer-1", 1).Return(&entity.FeedPage{Results: []entity.FeedPost{}}, nil)

	r := setupFeedRouter(uc)

	for _, raw := range []string{"abc", "-2", "0", ""} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/feed?page="+raw, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "page %q", raw)
	}
	uc.AssertNumberOfCalls(t, "GetFeed", 4)
}

func TestGetFeedUseCaseError(t *testing.T) {
	uc := new(MockFeedUseCase)
	uc.On("GetFeed", mock.Anything, "viewer-1", 1).Return(nil, assert.AnError)

	r := setupFeedRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
