package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"paperhub/internal/config"
	"paperhub/internal/http/middleware"
	"paperhub/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new student or mentor account.
func Signup(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		user, err := svc.Register(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials, mints a session token, and sets it as an
// HTTP-only cookie alongside the JSON response.
func Login(svc service.UserService, cfg config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     middleware.AuthCookieName,
			Value:    res.Token,
			Path:     "/",
			Expires:  time.Now().Add(time.Duration(cfg.TokenTTLMin) * time.Minute),
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		return c.JSON(res)
	}
}

// Logout clears the session cookie. Tokens are stateless so nothing is
// revoked server-side.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.AuthCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return c.JSON(fiber.Map{"message": "logged out"})
	}
}

// Me returns the authenticated account including its paper reference list.
func Me(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.Profile(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// ListMentors returns the accounts papers can be assigned to.
func ListMentors(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mentors, err := svc.Mentors(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(mentors)
	}
}
