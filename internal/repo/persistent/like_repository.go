package persistent

import (
	"context"

	"connectly/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle flips the like state for the (user, post) pair and returns
// true when the post ended up liked. The insert relies on the composite
// unique index: a conflicting row makes RowsAffected zero, which means
// the like already existed and must be removed instead. Running both
// steps in one transaction keeps concurrent toggles on the same pair
// from double-inserting or double-deleting.
func (r *LikeRepository) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &models.Like{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			liked = true
			return nil
		}
		return tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{}).Error
	})
	return liked, err
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// ListByPost returns the likes on a post together with who made them.
func (r *LikeRepository) ListByPost(ctx context.Context, postID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
