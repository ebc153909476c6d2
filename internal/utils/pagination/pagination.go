package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// ParseFromPath reads the zero-based :page, :size and :searchTerm route
// parameters. The term is URL-decoded; a missing term means "ALL".
func ParseFromPath(c *fiber.Ctx) (repositories.PageQuery, error) {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil {
		return repositories.PageQuery{}, fmt.Errorf("page must be a number")
	}
	size, err := strconv.Atoi(c.Params("size"))
	if err != nil {
		return repositories.PageQuery{}, fmt.Errorf("size must be a number")
	}

	term := c.Params("searchTerm", repositories.AllSearchTerm)
	if decoded, err := url.PathUnescape(term); err == nil {
		term = decoded
	}
	q := repositories.PageQuery{Page: page, Size: size, SearchTerm: term}
	if err := q.Validate(); err != nil {
		return repositories.PageQuery{}, err
	}
	return q, nil
}

// Response creates a standardized pagination response
func Response(q repositories.PageQuery, total int64, data interface{}) fiber.Map {
	totalPages := total / int64(q.Size)
	if total%int64(q.Size) > 0 {
		totalPages++
	}

	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": q.Page,
			"per_page":     q.Size,
			"total_items":  total,
			"total_pages":  totalPages,
		},
	}
}
