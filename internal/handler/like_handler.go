package handler

import (
	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/like"
)

type LikeHandler struct {
	likeService like.Service
}

func NewLikeHandler(likeService like.Service) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) Status(c *fiber.Ctx) error {
	postID := c.Query("postId")
	deviceID := c.Query("deviceId")
	if postID == "" || deviceID == "" {
		return middleware.BadRequest("Missing postId or deviceId")
	}

	status, err := h.likeService.PostStatus(c.Context(), postID, deviceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	var input domain.TogglePostLikeInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.likeService.TogglePost(c.Context(), input.PostID, input.DeviceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
