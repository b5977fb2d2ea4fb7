package domain

import "strings"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination holds 1-based page/limit parameters.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps page and limit to sane values.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing together with the total row count.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// TotalPages returns the number of pages for Total rows.
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// SortOrder is ASC or DESC.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder maps "asc"/"desc" (any case) to a SortOrder, falling back to def.
func ParseSortOrder(s string, def SortOrder) SortOrder {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return SortAsc
	case "DESC":
		return SortDesc
	}
	return def
}
