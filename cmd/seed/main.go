package main

import (
	"context"
	"fmt"
	"os"

	"connectly/pkg/config"
	"connectly/pkg/database"
	"connectly/pkg/logger"
	"connectly/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a development database with an admin, two users following each
// other, and a handful of posts. Safe to run repeatedly.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("connect postgres: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := seed(ctx, db); err != nil {
		log.Error("seed: %v", err)
		os.Exit(1)
	}
	log.Info("seed complete")
}

func seed(ctx context.Context, db *gorm.DB) error {
	admin, err := ensureUser(ctx, db, "admin@connectly.dev", "admin", models.RoleAdmin)
	if err != nil {
		return err
	}
	alice, err := ensureUser(ctx, db, "alice@connectly.dev", "alice", models.RoleUser)
	if err != nil {
		return err
	}
	bob, err := ensureUser(ctx, db, "bob@connectly.dev", "bob", models.RoleUser)
	if err != nil {
		return err
	}

	if err := ensureFollow(ctx, db, bob.ID, alice.ID); err != nil {
		return err
	}
	if err := ensureFollow(ctx, db, alice.ID, bob.ID); err != nil {
		return err
	}

	posts := []models.Post{
		{AuthorID: alice.ID, Title: "Hello from Alice", Content: "First post!", Visibility: models.VisibilityPublic},
		{AuthorID: alice.ID, Title: "Alice's diary", Content: "For my eyes only", Visibility: models.VisibilityPrivate},
		{AuthorID: bob.ID, Title: "Bob's thoughts", Content: "On distributed systems", Visibility: models.VisibilityPublic},
		{AuthorID: admin.ID, Title: "Welcome", Content: "Be kind to each other", Visibility: models.VisibilityPublic},
	}
	for i := range posts {
		if err := ensurePost(ctx, db, &posts[i]); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, db *gorm.DB, email, username string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", username, err)
	}
	return &user, nil
}

func ensureFollow(ctx context.Context, db *gorm.DB, followerID, followedID string) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	return db.WithContext(ctx).Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

func ensurePost(ctx context.Context, db *gorm.DB, post *models.Post) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND title = ?", post.AuthorID, post.Title).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	return db.WithContext(ctx).Create(post).Error
}
