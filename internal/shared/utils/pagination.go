package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/query"
)

// ParsePagination reads page and page_size, accepting limit as an alias for
// page_size. Invalid values fall back to defaults.
func ParsePagination(c *gin.Context) query.PageFilter {
	size := parseQueryInt(c, "page_size", 0)
	if size == 0 {
		size = parseQueryInt(c, "limit", constants.DefaultPageSize)
	}
	return query.PageFilter{
		Page:     parseQueryInt(c, "page", constants.DefaultPage),
		PageSize: size,
	}.Normalize()
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// ParseUintParam parses a positive path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// TotalPages is at least 1.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
