package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// PostService owns the post draft/publish lifecycle and ownership checks.
type PostService struct {
	postRepo  repository.PostRepository
	reactions *ReactionService
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	// IsDraft true keeps the post private to its author; the stored flag is
	// IsLive = !IsDraft.
	IsDraft bool
}

type UpdatePostInput struct {
	AuthorID uint
	PostID   uint
	Title    string
	Content  string
	// IsLive nil leaves the publish state untouched.
	IsLive *bool
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, reactions *ReactionService) *PostService {
	return &PostService{
		postRepo:  postRepo,
		reactions: reactions,
	}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
		IsLive:   !in.IsDraft,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a post by id. With onlyLive set, drafts are reported as
// not found so their existence never leaks to the public surface.
func (s *PostService) GetPost(ctx context.Context, id uint, onlyLive bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || (onlyLive && !post.IsLive) {
		return nil, models.NewNotFoundError("Post")
	}
	return post, nil
}

// GetDraft fetches a post regardless of publish state, but only for its
// author. Non-owners get the same not-found as for a missing post.
func (s *PostService) GetDraft(ctx context.Context, id, authorID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != authorID {
		return nil, models.NewNotFoundError("Post")
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != in.AuthorID {
		return nil, models.NewNotFoundError("Post")
	}
	// Publishing is one-directional: a live post never returns to draft.
	if post.IsLive && in.IsLive != nil && !*in.IsLive {
		return nil, models.NewConflictError("The post is already published")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}
	if in.IsLive != nil {
		post.IsLive = *in.IsLive
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post only when authorID owns it. A zero-row delete
// covers both "does not exist" and "not owned" and surfaces as not found.
func (s *PostService) DeletePost(ctx context.Context, authorID, postID uint) error {
	rows, err := s.postRepo.Delete(ctx, postID, authorID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, filter repository.LiveFilter) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundWithMessage("User has no posts created")
	}
	return posts, nil
}

func (s *PostService) ReactToPost(ctx context.Context, userID, postID, reactionID uint) (*models.Reaction, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}
	return s.reactions.React(ctx, post.ID, models.ResourceTypePost, userID, reactionID)
}

func (s *PostService) GetPostReactions(ctx context.Context, postID uint) ([]*models.Reaction, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}
	reactions, err := s.reactions.ListForResource(ctx, post.ID, models.ResourceTypePost)
	if err != nil {
		return nil, err
	}
	if len(reactions) == 0 {
		return nil, models.NewNotFoundWithMessage("The post has no reactions")
	}
	return reactions, nil
}
