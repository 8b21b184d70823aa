package http

import (
	"context"
	"net/http"

	"connectly/internal/usecase"
	"connectly/pkg/logger"
	"connectly/pkg/models"

	"github.com/gin-gonic/gin"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID string, in usecase.CreatePostInput) (*models.Post, error)
	GetPost(ctx context.Context, id, viewerID string, role models.UserRole) (*models.Post, error)
	ListPosts(ctx context.Context, role models.UserRole) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, id, viewerID string, role models.UserRole, in usecase.UpdatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id, viewerID string, role models.UserRole) error
}

type PostHandler struct {
	posts PostUseCase
	log   *logger.Logger
}

func NewPostHandler(posts PostUseCase, log *logger.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

type createPostRequest struct {
	Title      string `json:"title" binding:"required,max=100"`
	Content    string `json:"content" binding:"required"`
	Visibility string `json:"visibility"`
}

type updatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "Post data"
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := callerIdentity(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), userID, usecase.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Visibility: models.PostVisibility(req.Visibility),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get a single post
// @Description Private posts return 403 for viewers who may not read them
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	userID, role := callerIdentity(c)

	post, err := h.posts.GetPost(c.Request.Context(), c.Param("id"), userID, models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary List browsable posts
// @Description Administrators see every post, everyone else sees public posts only
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID, role := callerIdentity(c)

	if authorID := c.Query("author_id"); authorID != "" && authorID == userID {
		posts, err := h.posts.ListByAuthor(c.Request.Context(), authorID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body updatePostRequest true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, role := callerIdentity(c)

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := usecase.UpdatePostInput{Title: req.Title, Content: req.Content}
	if req.Visibility != nil {
		v := models.PostVisibility(*req.Visibility)
		in.Visibility = &v
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), c.Param("id"), userID, models.UserRole(role), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, role := callerIdentity(c)

	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id"), userID, models.UserRole(role)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
