package http

import (
	"context"
	"net/http"

	"connectly/pkg/logger"
	"connectly/pkg/models"

	"github.com/gin-gonic/gin"
)

type InteractionUseCase interface {
	ToggleLike(ctx context.Context, postID, viewerID string, role models.UserRole) (bool, error)
	ListLikes(ctx context.Context, postID, viewerID string, role models.UserRole) ([]models.Like, error)
	AddComment(ctx context.Context, postID, viewerID string, role models.UserRole, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID, viewerID string, role models.UserRole) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID, viewerID string, role models.UserRole) error
}

type InteractionHandler struct {
	interactions InteractionUseCase
	log          *logger.Logger
}

func NewInteractionHandler(interactions InteractionUseCase, log *logger.Logger) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, log: log}
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToggleLike godoc
// @Summary Toggle a like on a post
// @Description Returns 201 when the post ends up liked, 200 when unliked
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Success 201 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	userID, role := callerIdentity(c)

	liked, err := h.interactions.ToggleLike(c.Request.Context(), c.Param("id"), userID, models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"message": "Liked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unliked"})
}

// ListLikes godoc
// @Summary List likes on a post
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Like
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id}/likes [get]
func (h *InteractionHandler) ListLikes(c *gin.Context) {
	userID, role := callerIdentity(c)

	likes, err := h.interactions.ListLikes(c.Request.Context(), c.Param("id"), userID, models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body addCommentRequest true "Comment data"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (h *InteractionHandler) AddComment(c *gin.Context) {
	userID, role := callerIdentity(c)

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.interactions.AddComment(c.Request.Context(), c.Param("id"), userID, models.UserRole(role), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List comments on a post
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id}/comments [get]
func (h *InteractionHandler) ListComments(c *gin.Context) {
	userID, role := callerIdentity(c)

	comments, err := h.interactions.ListComments(c.Request.Context(), c.Param("id"), userID, models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags interactions
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	userID, role := callerIdentity(c)

	if err := h.interactions.DeleteComment(c.Request.Context(), c.Param("id"), userID, models.UserRole(role)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
