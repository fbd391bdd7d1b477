// Package query holds storage-agnostic list parameters passed from use cases
// to repositories.
package query

import "github.com/trackr-io/trackr/internal/shared/constants"

// PageFilter selects one page of a result set.
type PageFilter struct {
	Page     int
	PageSize int
}

// Normalize applies defaults and caps the page size.
func (f PageFilter) Normalize() PageFilter {
	if f.Page < 1 {
		f.Page = constants.DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = constants.DefaultPageSize
	}
	if f.PageSize > constants.MaxPageSize {
		f.PageSize = constants.MaxPageSize
	}
	return f
}

func (f PageFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.PageSize
}

func (f PageFilter) Limit() int {
	return f.Normalize().PageSize
}
