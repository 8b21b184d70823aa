package usecase

import (
	"context"
	"fmt"
	"strings"

	"connectly/pkg/logger"
	"connectly/pkg/models"
	"connectly/pkg/queue"
)

type LikeRepo interface {
	Toggle(ctx context.Context, userID, postID string) (bool, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	ListByPost(ctx context.Context, postID string) ([]models.Like, error)
}

type CommentRepo interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// PostReader is the slice of the post store interactions need: just
// enough to check the target post exists and is readable.
type PostReader interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
}

type InteractionUseCase struct {
	likes    LikeRepo
	comments CommentRepo
	posts    PostReader
	notifier Notifier
	log      *logger.Logger
}

func NewInteractionUseCase(likes LikeRepo, comments CommentRepo, posts PostReader, notifier Notifier, log *logger.Logger) *InteractionUseCase {
	return &InteractionUseCase{
		likes:    likes,
		comments: comments,
		posts:    posts,
		notifier: notifier,
		log:      log,
	}
}

func (uc *InteractionUseCase) readablePost(ctx context.Context, postID, viewerID string, role models.UserRole) (*models.Post, error) {
	post, err := uc.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("lookup post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !CanViewPost(post, viewerID, role) {
		return nil, ErrForbidden
	}
	return post, nil
}

// ToggleLike flips the viewer's like on the post and returns true when
// the post ended up liked. Toggling twice always restores the original
// state.
func (uc *InteractionUseCase) ToggleLike(ctx context.Context, postID, viewerID string, role models.UserRole) (bool, error) {
	post, err := uc.readablePost(ctx, postID, viewerID, role)
	if err != nil {
		return false, err
	}

	liked, err := uc.likes.Toggle(ctx, viewerID, postID)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}

	if liked && uc.notifier != nil {
		ev := queue.Event{Kind: queue.EventLiked, ActorID: viewerID, PostID: post.ID}
		if err := uc.notifier.Publish(ctx, ev); err != nil {
			uc.log.Warn("publish %s event: %v", queue.EventLiked, err)
		}
	}
	return liked, nil
}

func (uc *InteractionUseCase) ListLikes(ctx context.Context, postID, viewerID string, role models.UserRole) ([]models.Like, error) {
	if _, err := uc.readablePost(ctx, postID, viewerID, role); err != nil {
		return nil, err
	}
	return uc.likes.ListByPost(ctx, postID)
}

func (uc *InteractionUseCase) AddComment(ctx context.Context, postID, viewerID string, role models.UserRole, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	if _, err := uc.readablePost(ctx, postID, viewerID, role); err != nil {
		return nil, err
	}

	comment := &models.Comment{AuthorID: viewerID, PostID: postID, Content: content}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (uc *InteractionUseCase) ListComments(ctx context.Context, postID, viewerID string, role models.UserRole) ([]models.Comment, error) {
	if _, err := uc.readablePost(ctx, postID, viewerID, role); err != nil {
		return nil, err
	}
	return uc.comments.ListByPost(ctx, postID)
}

// DeleteComment removes a comment. Only its author and roles that
// manage users may delete it.
func (uc *InteractionUseCase) DeleteComment(ctx context.Context, commentID, viewerID string, role models.UserRole) error {
	comment, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("lookup comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.AuthorID != viewerID && !role.CanManageUsers() {
		return ErrForbidden
	}
	if err := uc.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
