package handler

import (
	"errors"
	"strconv"

	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidPeriod = errors.New("unknown period; use today, week or month")
	errInvalidDate   = errors.New("dates must use the YYYY-MM-DD format")
)

// toCents converts a decimal money amount to cents
func toCents(v float64) int64 {
	if v < 0 {
		return int64(v*100 - 0.5)
	}
	return int64(v*100 + 0.5)
}

// pageParams reads page-based pagination from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
