package handler

import (
	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/service/feed"
)

type FeedHandler struct {
	feedService feed.Service
}

func NewFeedHandler(feedService feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) RSS(c *fiber.Ctx) error {
	body, err := h.feedService.RSS(c.Context())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.Status(fiber.StatusOK).SendString(body)
}

func (h *FeedHandler) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(h.feedService.Robots())
}
