package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectly/internal/usecase"
	"connectly/pkg/logger"
	"connectly/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, authorID string, in usecase.CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, id, viewerID string, role models.UserRole) (*models.Post, error) {
	args := m.Called(ctx, id, viewerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context, role models.UserRole) ([]models.Post, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostUseCase) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, id, viewerID string, role models.UserRole, in usecase.UpdatePostInput) (*models.Post, error) {
	args := m.Called(ctx, id, viewerID, role, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, id, viewerID string, role models.UserRole) error {
	args := m.Called(ctx, id, viewerID, role)
	return args.Error(0)
}

func setupPostRouter(uc PostUseCase, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewPostHandler(uc, logger.New())
	identity := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	r.POST("/api/posts", identity, handler.CreatePost)
	r.GET("/api/posts", identity, handler.ListPosts)
	r.GET("/api/posts/:id", identity, handler.GetPost)
	r.PUT("/api/posts/:id", identity, handler.UpdatePost)
	r.DELETE("/api/posts/:id", identity, handler.DeletePost)
	return r
}

func TestCreatePost(t *testing.T) {
	uc := new(MockPostUseCase)
	uc.On("CreatePost", mock.Anything, "user-1", usecase.CreatePostInput{
		Title:      "Hello",
		Content:    "World",
		Visibility: models.VisibilityPrivate,
	}).Return(&models.Post{ID: "p1", Title: "Hello"}, nil)

	r := setupPostRouter(uc, "user-1", "user")
	body, _ := json.Marshal(gin.H{"title": "Hello", "content": "World", "visibility": "private"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "p1")
	uc.AssertExpectations(t)
}

func TestCreatePostMissingTitle(t *testing.T) {
	uc := new(MockPostUseCase)
	r := setupPostRouter(uc, "user-1", "user")

	body, _ := json.Marshal(gin.H{"content": "World"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "CreatePost")
}

func TestGetPostPrivateForbidden(t *testing.T) {
	uc := new(MockPostUseCase)
	uc.On("GetPost", mock.Anything, "p1", "user-1", models.RoleUser).Return(nil, usecase.ErrForbidden)

	r := setupPostRouter(uc, "user-1", "user")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/p1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetPostMissingNotFound(t *testing.T) {
	uc := new(MockPostUseCase)
	uc.On("GetPost", mock.Anything, "nope", "user-1", models.RoleUser).Return(nil, usecase.ErrNotFound)

	r := setupPostRouter(uc, "user-1", "user")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsPassesRole(t *testing.T) {
	uc := new(MockPostUseCase)
	uc.On("ListPosts", mock.Anything, models.RoleAdmin).Return([]models.Post{{ID: "p1"}, {ID: "p2"}}, nil)

	r := setupPostRouter(uc, "admin-1", "admin")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestDeletePostForbidden(t *testing.T) {
	uc := new(MockPostUseCase)
	uc.On("DeletePost", mock.Anything, "p1", "user-2", models.RoleUser).Return(usecase.ErrForbidden)

	r := setupPostRouter(uc, "user-2", "user")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/p1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
