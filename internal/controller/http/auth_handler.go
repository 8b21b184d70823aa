package http

import (
	"context"
	"mime/multipart"
	"net/http"

	"connectly/pkg/logger"
	"connectly/pkg/models"

	"github.com/gin-gonic/gin"
)

type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, role models.UserRole) ([]models.User, error)
	UploadAvatar(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error)
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
}

type AuthHandler struct {
	auth AuthUseCase
	log  *logger.Logger
}

func NewAuthHandler(auth AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration data"
// @Success 201 {object} authResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} authResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /users/me [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, _ := callerIdentity(c)

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List all accounts
// @Description Restricted to administrators
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	_, role := callerIdentity(c)

	users, err := h.auth.ListUsers(c.Request.Context(), models.UserRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /users/avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, _ := callerIdentity(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	url, err := h.auth.UploadAvatar(c.Request.Context(), userID, fileHeader)
	if err != nil {
		h.log.Error("upload avatar for %s: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to upload avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param id path string true "User ID to follow"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (h *AuthHandler) Follow(c *gin.Context) {
	followerID, _ := callerIdentity(c)
	followedID := c.Param("id")

	if err := h.auth.Follow(c.Request.Context(), followerID, followedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Followed"})
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Param id path string true "User ID to unfollow"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id}/follow [delete]
func (h *AuthHandler) Unfollow(c *gin.Context) {
	followerID, _ := callerIdentity(c)
	followedID := c.Param("id")

	if err := h.auth.Unfollow(c.Request.Context(), followerID, followedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}
