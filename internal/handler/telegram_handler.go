package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/telegram"
)

type TelegramHandler struct {
	telegramService telegram.Service
}

func NewTelegramHandler(telegramService telegram.Service) *TelegramHandler {
	return &TelegramHandler{telegramService: telegramService}
}

func (h *TelegramHandler) Channel(c *fiber.Ctx) error {
	var query domain.ChannelQuery
	if err := c.QueryParser(&query); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	info, err := h.telegramService.ChannelFeed(c.Context(), query)
	if err != nil {
		return telegramError(err)
	}

	return c.Status(fiber.StatusOK).JSON(info)
}

func (h *TelegramHandler) Post(c *fiber.Ctx) error {
	post, err := h.telegramService.PostByID(c.Context(), c.Params("id"))
	if err != nil {
		return telegramError(err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func telegramError(err error) error {
	var status *telegram.StatusError
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return middleware.Internal("Telegram channel is not configured")
	case errors.Is(err, domain.ErrPostNotFound):
		return middleware.NotFound("Post not found")
	case errors.As(err, &status):
		return middleware.BadGateway("Failed to fetch the Telegram channel")
	}
	return err
}
