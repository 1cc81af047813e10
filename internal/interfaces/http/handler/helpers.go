package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/interfaces/http/dto"
)

// bindListFilter binds common pagination query parameters plus the
// named extra keys into a repository filter.
func bindListFilter(c *gin.Context, extraKeys ...string) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	for _, key := range extraKeys {
		if value := c.Query(key); value != "" {
			if filter.Filters == nil {
				filter.Filters = make(map[string]interface{})
			}
			filter.Filters[key] = value
		}
	}
	return filter, nil
}
