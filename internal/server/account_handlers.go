package server

import (
	"microblog/internal/models"
	"microblog/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetAccountInfo handles GET /api/accounts/:userId
func (s *Server) GetAccountInfo(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	info, err := s.accountService.GetUserInfo(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(info)
}

// GetOwnProfile handles GET /api/accounts/:userId/profile. Profiles are
// private: requesting someone else's looks identical to a missing account.
func (s *Server) GetOwnProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if userID != currentUserID(c) {
		return fail(c, models.NewNotFoundWithMessage("User does not exist"))
	}

	user, err := s.accountService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}

// UpdateAccountSettings handles PUT /api/accounts/settings
func (s *Server) UpdateAccountSettings(c *fiber.Ctx) error {
	var req struct {
		ShowEmail bool `json:"show_email"`
		ShowName  bool `json:"show_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	settings, err := s.accountService.UpdateSettings(c.UserContext(), currentUserID(c), req.ShowEmail, req.ShowName)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(settings)
}

// GetAccountPosts handles GET /api/accounts/:userId/posts (live posts only)
func (s *Server) GetAccountPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.postService.GetUserPosts(c.UserContext(), userID, repository.LiveOnly)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(posts)
}

// GetAccountComments handles GET /api/accounts/:userId/comments
func (s *Server) GetAccountComments(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetUserComments(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(comments)
}

// GetReactions handles GET /api/reactions
func (s *Server) GetReactions(c *fiber.Ctx) error {
	reactions, err := s.reactionSvc.ListReactions(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(reactions)
}
