package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/comment"
	"maple-blog/internal/service/like"
)

type CommentHandler struct {
	commentService comment.Service
	likeService    like.Service
}

func NewCommentHandler(commentService comment.Service, likeService like.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService, likeService: likeService}
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	identifier := c.Query("identifier")
	if identifier == "" {
		return middleware.BadRequest("Missing identifier")
	}

	commentType, ok := domain.ParseCommentType(c.Query("commentType"))
	if !ok {
		return middleware.BadRequest("Invalid comment type")
	}

	mode, ok := domain.ParseDisplayMode(c.Query("mode"))
	if !ok {
		return middleware.BadRequest("Invalid display mode")
	}

	list, err := h.commentService.List(c.Context(), domain.ListCommentsQuery{
		Identifier: identifier,
		Type:       commentType,
		DeviceID:   c.Query("deviceId"),
		Mode:       mode,
	})
	if err != nil {
		return err
	}

	if list.Mode == domain.DisplayGuestbook {
		return c.Status(fiber.StatusOK).JSON(list.Tree)
	}
	return c.Status(fiber.StatusOK).JSON(list.Flat)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	asAdmin := middleware.IsAdmin(c)
	if asAdmin {
		input.UserInfo = nil
	}
	if err := validateStruct(&input); err != nil {
		return err
	}

	created, err := h.commentService.Create(c.Context(), input, asAdmin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGuestInfoRequired), errors.Is(err, domain.ErrEmptyComment):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, domain.ErrReservedIdentity):
			return middleware.Forbidden("This nickname or email is reserved, please log in")
		case errors.Is(err, domain.ErrParentNotFound):
			return middleware.NotFound("Parent comment not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": created,
	})
}

func (h *CommentHandler) ToggleLike(c *fiber.Ctx) error {
	var input domain.ToggleCommentLikeInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.likeService.ToggleComment(c.Context(), input.CommentID, domain.CommentType(input.CommentType), input.DeviceID)
	if err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) || errors.Is(err, domain.ErrCommentTypeMatch) {
			return middleware.NotFound("Comment not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
