package server

import (
	"strconv"

	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignUp handles POST /api/auth/sign-up
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.SignUp(c.UserContext(), service.SignUpInput{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Account created, check your mail to verify it",
	})
}

// VerifyAccount handles GET /api/auth/verify?user=<id>
func (s *Server) VerifyAccount(c *fiber.Ctx) error {
	raw := c.Query("user")
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	if err := s.authService.Verify(c.UserContext(), uint(userID)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account verified"})
}

// SignIn handles POST /api/auth/sign-in
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Login == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Login and password are required"))
	}

	token, err := s.authService.SignIn(c.UserContext(), service.SignInInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// SignOut handles GET /api/auth/sign-out
func (s *Server) SignOut(c *fiber.Ctx) error {
	token := c.Locals("token").(string)

	if err := s.authService.SignOut(c.UserContext(), token); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Signed out"})
}
