package usecase

import (
	"context"
	"fmt"

	"connectly/internal/entity"
	"connectly/pkg/logger"
	"connectly/pkg/models"
)

type FeedFollowRepo interface {
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type FeedPostRepo interface {
	PostsByAuthors(ctx context.Context, authorIDs []string) ([]models.Post, error)
	LikeCounts(ctx context.Context, postIDs []string) (map[string]int64, error)
	CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error)
}

// FeedCache caches rendered feed pages. It is strictly an accelerator:
// every method failure is logged and the request proceeds from the
// database as if the cache did not exist.
type FeedCache interface {
	GetPage(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error)
	SetPage(ctx context.Context, viewerID string, page int, feedPage *entity.FeedPage) error
}

type FeedUseCase struct {
	follows  FeedFollowRepo
	posts    FeedPostRepo
	cache    FeedCache
	log      *logger.Logger
	pageSize int
}

func NewFeedUseCase(follows FeedFollowRepo, posts FeedPostRepo, cache FeedCache, log *logger.Logger, pageSize int) *FeedUseCase {
	if pageSize < 1 {
		pageSize = 10
	}
	return &FeedUseCase{
		follows:  follows,
		posts:    posts,
		cache:    cache,
		log:      log,
		pageSize: pageSize,
	}
}

// GetFeed returns one page of posts by the authors the viewer follows,
// newest first. The candidate set is everything those authors wrote,
// including their private posts. A cache hit returns the page exactly
// as it was first rendered.
func (uc *FeedUseCase) GetFeed(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error) {
	if page < 1 {
		page = 1
	}

	if uc.cache != nil {
		cached, err := uc.cache.GetPage(ctx, viewerID, page)
		if err != nil {
			uc.log.Warn("feed cache read for %s page %d: %v", viewerID, page, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	feedPage, err := uc.buildPage(ctx, viewerID, page)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetPage(ctx, viewerID, page, feedPage); err != nil {
			uc.log.Warn("feed cache write for %s page %d: %v", viewerID, page, err)
		}
	}
	return feedPage, nil
}

func (uc *FeedUseCase) buildPage(ctx context.Context, viewerID string, page int) (*entity.FeedPage, error) {
	authorIDs, err := uc.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load following: %w", err)
	}

	candidates, err := uc.posts.PostsByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load feed posts: %w", err)
	}

	w := Window(page, uc.pageSize, len(candidates))
	window := candidates[w.Offset : w.Offset+w.Limit]

	postIDs := make([]string, len(window))
	for i, p := range window {
		postIDs[i] = p.ID
	}

	likeCounts, err := uc.posts.LikeCounts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load like counts: %w", err)
	}
	commentCounts, err := uc.posts.CommentCounts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load comment counts: %w", err)
	}

	results := make([]entity.FeedPost, len(window))
	for i, p := range window {
		results[i] = entity.FeedPost{
			ID:             p.ID,
			AuthorID:       p.AuthorID,
			AuthorUsername: p.Author.Username,
			Title:          p.Title,
			Content:        p.Content,
			Visibility:     string(p.Visibility),
			LikeCount:      likeCounts[p.ID],
			CommentCount:   commentCounts[p.ID],
			CreatedAt:      p.CreatedAt,
		}
	}

	feedPage := &entity.FeedPage{
		Results: results,
		Count:   int64(len(candidates)),
	}
	if w.HasNext {
		next := page + 1
		feedPage.Next = &next
	}
	if w.HasPrevious {
		prev := page - 1
		feedPage.Previous = &prev
	}
	return feedPage, nil
}
