package usecase

import (
	"context"
	"testing"

	"connectly/pkg/jwt"
	"connectly/pkg/logger"
	"connectly/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

type MockFollowRepo struct {
	mock.Mock
}

func (m *MockFollowRepo) Create(ctx context.Context, followerID, followedID string) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepo) Delete(ctx context.Context, followerID, followedID string) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func newAuthFixture() (*MockUserRepo, *MockFollowRepo, *AuthUseCase) {
	users := new(MockUserRepo)
	follows := new(MockFollowRepo)
	uc := NewAuthUseCase(users, follows, nil, jwt.NewService("test-secret"), logger.New())
	return users, follows, uc
}

func TestRegisterNewUser(t *testing.T) {
	users, _, uc := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, nil)
	users.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "a@b.com" && u.Role == models.RoleUser && u.Password != "password123"
	})).Return(nil)

	user, token, err := uc.Register(context.Background(), "a@b.com", "alice", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	users.AssertExpectations(t)
}

func TestRegisterEmailAlreadyTaken(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.User{ID: "u1"}, nil)

	_, _, err := uc.Register(context.Background(), "a@b.com", "alice", "password123")

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create")
}

func TestRegisterUsernameAlreadyTaken(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, nil)
	users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{ID: "u1"}, nil)

	_, _, err := uc.Register(context.Background(), "a@b.com", "alice", "password123")

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginSuccess(t *testing.T) {
	users, _, uc := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.User{
		ID:       "u1",
		Email:    "a@b.com",
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
	}, nil)

	user, token, err := uc.Login(context.Background(), "a@b.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	claims, err := jwt.NewService("test-secret").ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	users, _, uc := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.User{
		ID: "u1", Password: string(hash), IsActive: true,
	}, nil)

	_, _, err := uc.Login(context.Background(), "a@b.com", "nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("GetByEmail", mock.Anything, "ghost@b.com").Return(nil, nil)

	_, _, err := uc.Login(context.Background(), "ghost@b.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.User{ID: "u1", IsActive: false}, nil)

	_, _, err := uc.Login(context.Background(), "a@b.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("List", mock.Anything).Return([]models.User{{ID: "u1"}}, nil)

	_, err := uc.ListUsers(context.Background(), models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	listed, err := uc.ListUsers(context.Background(), models.RoleAdmin)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestFollowSelf(t *testing.T) {
	_, _, uc := newAuthFixture()

	err := uc.Follow(context.Background(), "u1", "u1")

	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowMissingTarget(t *testing.T) {
	users, _, uc := newAuthFixture()
	users.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	err := uc.Follow(context.Background(), "u1", "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowTwice(t *testing.T) {
	users, follows, uc := newAuthFixture()
	users.On("GetByID", mock.Anything, "u2").Return(&models.User{ID: "u2"}, nil)
	follows.On("Exists", mock.Anything, "u1", "u2").Return(true, nil)

	err := uc.Follow(context.Background(), "u1", "u2")

	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestUnfollowNotFollowing(t *testing.T) {
	_, follows, uc := newAuthFixture()
	follows.On("Delete", mock.Anything, "u1", "u2").Return(false, nil)

	err := uc.Unfollow(context.Background(), "u1", "u2")

	assert.ErrorIs(t, err, ErrNotFollowing)
}
