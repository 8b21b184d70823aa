package usecase

import (
	"context"
	"fmt"
	"strings"

	"connectly/pkg/logger"
	"connectly/pkg/models"
	"connectly/pkg/queue"
)

const maxTitleLength = 100

type PostRepo interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListPublic(ctx context.Context) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// Notifier publishes domain events. Delivery is best effort: a broker
// outage must never fail the request that triggered the event.
type Notifier interface {
	Publish(ctx context.Context, ev queue.Event) error
}

type PostUseCase struct {
	posts    PostRepo
	notifier Notifier
	log      *logger.Logger
}

func NewPostUseCase(posts PostRepo, notifier Notifier, log *logger.Logger) *PostUseCase {
	return &PostUseCase{posts: posts, notifier: notifier, log: log}
}

type CreatePostInput struct {
	Title      string
	Content    string
	Visibility models.PostVisibility
}

func (in *CreatePostInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(in.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPublic
	}
	if in.Visibility != models.VisibilityPublic && in.Visibility != models.VisibilityPrivate {
		return fmt.Errorf("%w: visibility must be public or private", ErrValidation)
	}
	return nil
}

func (uc *PostUseCase) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:   authorID,
		Title:      in.Title,
		Content:    in.Content,
		Visibility: in.Visibility,
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if uc.notifier != nil {
		ev := queue.Event{Kind: queue.EventNewPost, ActorID: authorID, PostID: post.ID}
		if err := uc.notifier.Publish(ctx, ev); err != nil {
			uc.log.Warn("publish %s event: %v", queue.EventNewPost, err)
		}
	}
	return post, nil
}

// GetPost returns the post if the viewer may read it. A private post
// the viewer cannot read yields ErrForbidden, not ErrNotFound, so the
// caller learns the post exists but is closed.
func (uc *PostUseCase) GetPost(ctx context.Context, id, viewerID string, role models.UserRole) (*models.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
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

// ListPosts returns the posts the role may browse: everything for roles
// that bypass privacy, public posts only for everyone else.
func (uc *PostUseCase) ListPosts(ctx context.Context, role models.UserRole) ([]models.Post, error) {
	if role.CanBypassPrivacy() {
		return uc.posts.ListAll(ctx)
	}
	return uc.posts.ListPublic(ctx)
}

func (uc *PostUseCase) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return uc.posts.ListByAuthor(ctx, authorID)
}

type UpdatePostInput struct {
	Title      *string
	Content    *string
	Visibility *models.PostVisibility
}

func (uc *PostUseCase) UpdatePost(ctx context.Context, id, viewerID string, role models.UserRole, in UpdatePostInput) (*models.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !CanModifyPost(post, viewerID, role) {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Visibility != nil {
		post.Visibility = *in.Visibility
	}

	check := CreatePostInput{Title: post.Title, Content: post.Content, Visibility: post.Visibility}
	if err := check.validate(); err != nil {
		return nil, err
	}
	post.Title = check.Title

	if err := uc.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (uc *PostUseCase) DeletePost(ctx context.Context, id, viewerID string, role models.UserRole) error {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup post: %w", err)
	}
	if post == nil {
		return ErrNotFound
	}
	if !CanModifyPost(post, viewerID, role) {
		return ErrForbidden
	}
	if err := uc.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
