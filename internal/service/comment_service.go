package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// CommentService mirrors the post lifecycle for comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	reactions   *ReactionService
}

type PostCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
	IsDraft  bool
}

type UpdateCommentInput struct {
	AuthorID  uint
	CommentID uint
	Content   string
	IsLive    *bool
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	reactions *ReactionService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		reactions:   reactions,
	}
}

const maxCommentLen = 10000

// PostComment creates a comment under an existing post, together with its
// reactable association.
func (s *CommentService) PostComment(ctx context.Context, in PostCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
		IsLive:   !in.IsDraft,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetPostComments returns the live comments of an existing post.
func (s *CommentService) GetPostComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}

	comments, err := s.commentRepo.ListLiveByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, models.NewNotFoundWithMessage("The post has no comments")
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	// Non-owners get the same answer as for a missing comment.
	if comment == nil || comment.AuthorID != in.AuthorID {
		return nil, models.NewNotFoundError("Comment")
	}
	if comment.IsLive && in.IsLive != nil && !*in.IsLive {
		return nil, models.NewConflictError("The comment is already published")
	}

	if in.Content != "" {
		if len(in.Content) > maxCommentLen {
			return nil, models.NewValidationError("Comment too long (max 10000 characters)")
		}
		comment.Content = in.Content
	}
	if in.IsLive != nil {
		comment.IsLive = *in.IsLive
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, authorID uint) error {
	rows, err := s.commentRepo.Delete(ctx, commentID, authorID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundWithMessage("The comment does not exist")
	}
	return nil
}

func (s *CommentService) ReactToComment(ctx context.Context, userID, commentID, reactionID uint) (*models.Reaction, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment")
	}
	return s.reactions.React(ctx, comment.ID, models.ResourceTypeComment, userID, reactionID)
}

func (s *CommentService) GetUserComments(ctx context.Context, userID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, models.NewNotFoundWithMessage("User has no comments")
	}
	return comments, nil
}
