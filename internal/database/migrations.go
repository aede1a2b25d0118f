package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns []string
}

// Composite indexes that cannot be declared on a single struct field.
var compositeIndexes = []indexDef{
	// Section listing and reorder shifts
	{"sections", "idx_sections_project_position", []string{"project_id", "position"}},

	// Task listing per project/section ordered by recency
	{"tasks", "idx_tasks_project_section", []string{"project_id", "section_id"}},
	{"tasks", "idx_tasks_project_updated_at", []string{"project_id", "updated_at"}},

	// Notification inbox pagination and cleanup
	{"notifications", "idx_notifications_user_created_at", []string{"user_id", "created_at"}},
	{"notifications", "idx_notifications_user_read", []string{"user_id", "is_read"}},

	// Comment and attachment timelines
	{"comments", "idx_comments_task_created_at", []string{"task_id", "created_at"}},
	{"attachments", "idx_attachments_task_created_at", []string{"task_id", "created_at"}},
}

// AddIndexes adds performance-critical composite indexes to the database
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		// Check if index already exists
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		quoted := make([]string, len(idx.columns))
		for i, col := range idx.columns {
			quoted[i] = db.Statement.Quote(col)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			db.Statement.Quote(idx.name),
			db.Statement.Quote(idx.table),
			strings.Join(quoted, ", "),
		)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
	}

	return nil
}
