package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// NewestFirst orders rows by creation time, breaking ties by id so cursors are stable.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}

// CursorPage limits a query to one page plus a look-ahead row used to detect the next cursor.
func CursorPage(params utils.CursorParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(params.Limit + 1)
	}
}
