package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/domain"
	"maple-blog/internal/middleware"
	"maple-blog/internal/service/search"
)

type SearchHandler struct {
	searchService search.Service
}

func NewSearchHandler(searchService search.Service) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var input domain.SearchInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.searchService.Search(c.Context(), input)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			return middleware.BadRequest("Invalid search query")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
