package repository

import (
	"github.com/nshimizu0918/taskboard/internal/database"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/search"
	"github.com/nshimizu0918/taskboard/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task, persisting tag associations along with it
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateAll creates several tasks in one transaction; any failure rolls back
// the whole batch
func (r *GormTaskRepository) CreateAll(tasks []*models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListVisible retrieves one page of the tasks the user owns or is assigned,
// ordered by creation date
func (r *GormTaskRepository) ListVisible(userID uint64, page, pageSize int) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Scopes(database.VisibleTasks(userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	var tasks []models.Task
	if err := listQuery.
		Preload("Status").
		Preload("Priority").
		Preload("Assignee").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// AllVisible retrieves every task the user owns or is assigned
func (r *GormTaskRepository) AllVisible(userID uint64, preload ...string) ([]models.Task, error) {
	query := r.db.Scopes(database.VisibleTasks(userID))

	for _, p := range preload {
		query = query.Preload(p)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Search runs a composed search query against the task table
func (r *GormTaskRepository) Search(query search.Query) ([]models.Task, error) {
	var tasks []models.Task
	db := query.Apply(r.db.Model(&models.Task{}))
	if err := db.
		Preload("Status").
		Preload("Priority").
		Preload("Assignee").
		Preload("Tags").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task's own columns
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Tags", "Comments", "Owner", "Assignee", "Status", "Priority").Save(task).Error
}

// ReplaceTags replaces a task's tag associations
func (r *GormTaskRepository) ReplaceTags(task *models.Task, tags []models.Tag) error {
	return r.db.Model(task).Association("Tags").Replace(tags)
}

// Delete removes a task, its comments and its tag associations
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
