package utils

import "math"

const (
	// DefaultLimit is the page size used when the caller does not send one
	DefaultLimit = 20
	// MaxLimit caps the page size a caller may request
	MaxLimit = 100
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Returned int   `json:"returned"`
}

// GetPaginationParams normalizes page and limit. Page defaults to 1,
// limit to DefaultLimit, capped at MaxLimit.
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a total row count
func (p PaginationParams) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
