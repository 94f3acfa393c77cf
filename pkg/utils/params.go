package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a positive uint path parameter
func GetIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	if id == 0 {
		return 0, fmt.Errorf("%s must be greater than zero", name)
	}
	return uint(id), nil
}

// GetPaginationParams parses page and per_page query parameters with defaults
func GetPaginationParams(c *gin.Context) (page int, perPage int) {
	page = 1
	perPage = 20

	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("per_page", "20")); err == nil && v > 0 && v <= 100 {
		perPage = v
	}
	return page, perPage
}

// GetIntQuery parses an optional integer query parameter, returning nil when absent
func GetIntQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return &v, nil
}
