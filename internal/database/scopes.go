package database

import (
	"gorm.io/gorm"

	"github.com/nshimizu0918/taskboard/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// VisibleTasks restricts a task query to rows the user may see:
// the user is the owner or the assignee.
func VisibleTasks(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.user_id = ? OR tasks.assignee_id = ?", userID, userID)
	}
}
