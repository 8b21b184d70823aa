package persistent

import (
	"context"

	"connectly/pkg/models"

	"gorm.io/gorm"
)

// FeedRepository fetches feed candidates with a fixed number of round
// trips: one IN query for the posts and one grouped count query per
// interaction kind, regardless of how many authors are followed.
type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// PostsByAuthors returns every post written by the given authors,
// ordered newest first with id as the tiebreaker so the order is total.
func (r *FeedRepository) PostsByAuthors(ctx context.Context, authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

type postCount struct {
	PostID string
	Count  int64
}

// LikeCounts returns like totals per post for the given posts. Posts
// with no likes are absent from the map.
func (r *FeedRepository) LikeCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return r.groupedCounts(ctx, &models.Like{}, postIDs)
}

// CommentCounts returns comment totals per post for the given posts.
func (r *FeedRepository) CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return r.groupedCounts(ctx, &models.Comment{}, postIDs)
}

func (r *FeedRepository) groupedCounts(ctx context.Context, model interface{}, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
