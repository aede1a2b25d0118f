package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// purgeTasks deletes the tasks selected by scope together with their direct
// sub-tasks and every comment, attachment and tag link hanging off them.
// It must run inside a transaction.
func purgeTasks(tx *gorm.DB, scope func(*gorm.DB) *gorm.DB) error {
	var ids []string
	if err := tx.Model(&models.Task{}).Scopes(scope).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	var subTaskIDs []string
	if err := tx.Model(&models.Task{}).Where("parent_task_id IN ?", ids).Pluck("id", &subTaskIDs).Error; err != nil {
		return err
	}
	ids = append(ids, subTaskIDs...)

	if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", ids).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Task{}).Error
}

// replaceTaskTags swaps the tag set of a task. Tags are share-locked so a
// concurrent tag deletion cannot slip between the existence check and the insert.
func replaceTaskTags(tx *gorm.DB, taskID string, tagIDs []string) error {
	tagIDs = uniqueStrings(tagIDs)

	if len(tagIDs) > 0 {
		var tags []models.Tag
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id IN ?", tagIDs).
			Find(&tags).Error; err != nil {
			return err
		}
		if len(tags) != len(tagIDs) {
			return ErrUnknownTag
		}
	}

	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]models.TaskTag, len(tagIDs))
	for i, tagID := range tagIDs {
		links[i] = models.TaskTag{TaskID: taskID, TagID: tagID}
	}
	return tx.Create(&links).Error
}

// uniqueStrings removes duplicate values while keeping the first occurrence order
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

type countRow struct {
	GroupKey string
	Total    int64
}

// countBy groups rows of model by column for the given keys.
func countBy(db *gorm.DB, model interface{}, column string, keys []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return counts, nil
	}

	var rows []countRow
	if err := db.Model(model).
		Select(column + " AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
