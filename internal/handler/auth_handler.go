package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	secure      bool
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, secure: cfg.IsProduction()}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Incorrect password")
		}
		if errors.Is(err, auth.ErrPasswordNotConfigured) {
			return middleware.Internal("Admin password is not configured")
		}
		return err
	}

	if !result.IsAdmin {
		return c.Status(fiber.StatusOK).JSON(domain.LoginResponse{Success: true})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(domain.LoginResponse{
		Success: true,
		IsAdmin: true,
		Message: "Signed in",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.GetAdmin(c)
	if claims == nil {
		return c.Status(fiber.StatusOK).JSON(domain.MeResponse{})
	}

	admin := h.authService.Admin()
	return c.Status(fiber.StatusOK).JSON(domain.MeResponse{
		IsLoggedIn: true,
		IsAdmin:    true,
		Nickname:   claims.Nickname,
		Email:      claims.Email,
		Website:    admin.Website,
		Avatar:     admin.Avatar,
	})
}
