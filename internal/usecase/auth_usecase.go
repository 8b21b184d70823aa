package usecase

import (
	"context"
	"fmt"
	"mime/multipart"

	"connectly/pkg/jwt"
	"connectly/pkg/logger"
	"connectly/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
}

type FollowRepo interface {
	Create(ctx context.Context, followerID, followedID string) error
	Delete(ctx context.Context, followerID, followedID string) (bool, error)
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
}

type AvatarStore interface {
	UploadAvatar(userID string, fileHeader *multipart.FileHeader) (string, error)
}

type AuthUseCase struct {
	users   UserRepo
	follows FollowRepo
	avatars AvatarStore
	jwt     *jwt.Service
	log     *logger.Logger
}

func NewAuthUseCase(users UserRepo, follows FollowRepo, avatars AvatarStore, jwtService *jwt.Service, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		follows: follows,
		avatars: avatars,
		jwt:     jwtService,
		log:     log,
	}
}

// Register creates an account with the default role and returns it with
// a fresh token.
func (uc *AuthUseCase) Register(ctx context.Context, email, username, password string) (*models.User, string, error) {
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	existing, err = uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := uc.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	uc.log.Info("user registered: %s", user.Username)
	return user, token, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ListUsers is restricted to roles that manage accounts.
func (uc *AuthUseCase) ListUsers(ctx context.Context, role models.UserRole) ([]models.User, error) {
	if !role.CanManageUsers() {
		return nil, ErrForbidden
	}
	return uc.users.List(ctx)
}

// UploadAvatar stores the image and records its URL on the profile.
func (uc *AuthUseCase) UploadAvatar(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error) {
	if uc.avatars == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}
	url, err := uc.avatars.UploadAvatar(userID, fileHeader)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if err := uc.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", fmt.Errorf("save avatar url: %w", err)
	}
	return url, nil
}

func (uc *AuthUseCase) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	target, err := uc.users.GetByID(ctx, followedID)
	if err != nil {
		return fmt.Errorf("lookup followed user: %w", err)
	}
	if target == nil {
		return ErrNotFound
	}

	exists, err := uc.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if exists {
		return ErrAlreadyFollowing
	}

	if err := uc.follows.Create(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) Unfollow(ctx context.Context, followerID, followedID string) error {
	removed, err := uc.follows.Delete(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}
