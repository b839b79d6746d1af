package server

import (
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		IsDraft bool   `json:"is_draft"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		IsDraft:  req.IsDraft,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id (live posts only)
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, true)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// GetOwnDraft handles GET /api/posts/:id/draft
func (s *Server) GetOwnDraft(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetDraft(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// GetOwnPosts handles GET /api/posts
func (s *Server) GetOwnPosts(c *fiber.Ctx) error {
	posts, err := s.postService.GetUserPosts(c.UserContext(), currentUserID(c), repository.LiveAll)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(posts)
}

// GetOwnDrafts handles GET /api/posts/drafts
func (s *Server) GetOwnDrafts(c *fiber.Ctx) error {
	posts, err := s.postService.GetUserPosts(c.UserContext(), currentUserID(c), repository.DraftsOnly)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		IsLive  *bool  `json:"is_live"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		AuthorID: currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
		IsLive:   req.IsLive,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReactToPost handles POST /api/posts/:id/reactions
func (s *Server) ReactToPost(c *fiber.Ctx) error {
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

	reaction, err := s.postService.ReactToPost(c.UserContext(), currentUserID(c), id, req.ReactionID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reaction)
}

// GetPostReactions handles GET /api/posts/:id/reactions
func (s *Server) GetPostReactions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reactions, err := s.postService.GetPostReactions(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(reactions)
}
