package server

import (
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
		IsDraft bool   `json:"is_draft"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.PostComment(c.UserContext(), service.PostCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		Content:  req.Content,
		IsDraft:  req.IsDraft,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetPostComments handles GET /api/posts/:id/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetPostComments(c.UserContext(), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(comments)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
		IsLive  *bool  `json:"is_live"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		AuthorID:  currentUserID(c),
		CommentID: id,
		Content:   req.Content,
		IsLive:    req.IsLive,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id, currentUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReactToComment handles POST /api/comments/:id/reactions
func (s *Server) ReactToComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionID uint `json:"reaction_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reaction, err := s.commentService.ReactToComment(c.UserContext(), currentUserID(c), id, req.ReactionID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reaction)
}
