package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/comment"
	"maple-blog/internal/service/dashboard"
	"maple-blog/internal/service/shortlink"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
	linkService      shortlink.Service
	commentService   comment.Service
}

func NewDashboardHandler(dashboardService dashboard.Service, linkService shortlink.Service, commentService comment.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		linkService:      linkService,
		commentService:   commentService,
	}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) SinkDetails(c *fiber.Ctx) error {
	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}

	data, err := h.linkService.Report(c.Context(), c.Query("report"), query)
	if err != nil {
		var upstream *shortlink.UpstreamError
		switch {
		case errors.Is(err, shortlink.ErrInvalidReport):
			return middleware.BadRequest("Invalid report type specified")
		case errors.Is(err, domain.ErrNotConfigured):
			return middleware.Internal("Sink API URL or key is not configured")
		case errors.As(err, &upstream):
			return middleware.NewError(upstream.Status, "Failed to fetch from Sink API: "+upstream.Body)
		}
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *DashboardHandler) ListComments(c *fiber.Ctx) error {
	var commentType domain.CommentType
	if raw := c.Query("commentType"); raw != "" {
		parsed, ok := domain.ParseCommentType(raw)
		if !ok {
			return middleware.BadRequest("Invalid comment type")
		}
		commentType = parsed
	}

	params := getPaginationParams(c)

	result, err := h.commentService.ListAll(c.Context(), commentType, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *DashboardHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), commentID); err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return middleware.NotFound("Comment not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("limit", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
