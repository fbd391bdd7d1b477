// Package repository implements the domain repositories on gorm. Every
// method joins the caller's transaction through db.GetTxFromContext.
package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/shared/db"
	"github.com/trackr-io/trackr/internal/shared/query"
)

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func pageScope(page query.PageFilter) func(*gorm.DB) *gorm.DB {
	p := page.Normalize()
	return db.Paginate(p.Page, p.PageSize)
}
