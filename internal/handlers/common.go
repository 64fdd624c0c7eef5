package handlers

import (
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginationRequest represents list query parameters shared by all list
// endpoints.
type paginationRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// bindPagination reads limit/offset query parameters and clamps them to
// sane bounds.
func bindPagination(c echo.Context) (limit, offset int) {
	var req paginationRequest
	_ = c.Bind(&req)
	limit = req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = req.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
