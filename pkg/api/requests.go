package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dj/customer-service/pkg/models"
	"github.com/dj/customer-service/pkg/services"
)

// searchQuery is the query string of GET /api/v1/customers.
// sort is "field" or "field,direction", e.g. "full_name,desc".
type searchQuery struct {
	Name   string `form:"name"`
	Email  string `form:"email"`
	Mobile string `form:"mobile"`
	Page   int    `form:"page"`
	Size   int    `form:"size"`
	Sort   string `form:"sort"`
}

func (q searchQuery) filter() models.CustomerFilter {
	return models.CustomerFilter{Name: q.Name, Email: q.Email, Mobile: q.Mobile}
}

// pageRequest applies the configured default size and caps the size at max.
func (q searchQuery) pageRequest(defaultSize, maxSize int) models.PageRequest {
	size := q.Size
	if size == 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	field, dir, _ := strings.Cut(q.Sort, ",")
	return models.PageRequest{
		Page:      q.Page,
		Size:      size,
		SortBy:    strings.TrimSpace(field),
		Direction: strings.TrimSpace(dir),
	}
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
