package persistent

import (
	"context"
	"testing"

	"connectly/pkg/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	)
	assert.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@test.dev",
		Username: username,
		Password: "hash",
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Title: "t", Content: "c"}
	assert.NoError(t, db.Create(post).Error)
	return post
}

func TestFollowRepositoryRefollowAfterUnfollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	assert.NoError(t, repo.Create(ctx, alice.ID, bob.ID))

	removed, err := repo.Delete(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	// The unfollowed edge must be gone from the table, not just hidden,
	// so the unique pair index cannot reject the next follow.
	var rows int64
	assert.NoError(t, db.Table("follows").Count(&rows).Error)
	assert.Equal(t, int64(0), rows)

	exists, err := repo.Exists(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, repo.Create(ctx, alice.ID, bob.ID))

	exists, err = repo.Exists(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowRepositoryDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	assert.NoError(t, repo.Create(ctx, alice.ID, bob.ID))
	assert.Error(t, repo.Create(ctx, alice.ID, bob.ID))
}

func TestFollowRepositoryFollowingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	assert.NoError(t, repo.Create(ctx, alice.ID, bob.ID))
	assert.NoError(t, repo.Create(ctx, alice.ID, carol.ID))

	ids, err := repo.FollowingIDs(ctx, alice.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{bob.ID, carol.ID}, ids)

	ids, err = repo.FollowingIDs(ctx, bob.ID)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLikeRepositoryToggleParity(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)

	liked, err := repo.Toggle(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Second toggle hits the unique pair conflict, inserts nothing and
	// removes the existing row instead.
	liked, err = repo.Toggle(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.CountByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	liked, err = repo.Toggle(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, liked)

	count, err = repo.CountByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepositoryTogglePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	liked, err := repo.Toggle(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.Toggle(ctx, bob.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Bob unliking leaves Alice's like untouched.
	liked, err = repo.Toggle(ctx, bob.ID, post.ID)
	assert.NoError(t, err)
	assert.False(t, liked)

	exists, err := repo.Exists(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, exists)
}
