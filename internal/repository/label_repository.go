package repository

import (
	"errors"

	"github.com/nshimizu0918/taskboard/internal/models"
	"gorm.io/gorm"
)

// ErrLabelInUse is returned when deleting a status or priority that a task
// still references. The row is left untouched.
var ErrLabelInUse = errors.New("label repository: label is referenced by a task")

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

func (r *GormLabelRepository) ListStatuses(userID uint64) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormLabelRepository) ListPriorities(userID uint64) ([]models.Priority, error) {
	var priorities []models.Priority
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

func (r *GormLabelRepository) ListTags(userID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormLabelRepository) CreateStatus(status *models.Status) error {
	return r.db.Create(status).Error
}

func (r *GormLabelRepository) CreatePriority(priority *models.Priority) error {
	return r.db.Create(priority).Error
}

func (r *GormLabelRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *GormLabelRepository) FindStatus(id uint64) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormLabelRepository) FindPriority(id uint64) (*models.Priority, error) {
	var priority models.Priority
	if err := r.db.First(&priority, id).Error; err != nil {
		return nil, err
	}
	return &priority, nil
}

func (r *GormLabelRepository) FindTag(id uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteStatus removes a status, refusing while any task references it
func (r *GormLabelRepository) DeleteStatus(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLabelInUse
		}
		return tx.Delete(&models.Status{}, id).Error
	})
}

// DeletePriority removes a priority, refusing while any task references it
func (r *GormLabelRepository) DeletePriority(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("priority_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLabelInUse
		}
		return tx.Delete(&models.Priority{}, id).Error
	})
}

// DeleteTag removes a tag together with its task associations
func (r *GormLabelRepository) DeleteTag(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

func (r *GormLabelRepository) TagsByIDs(userID uint64, ids []uint64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormLabelRepository) TagsByNames(userID uint64, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("user_id = ? AND name IN ?", userID, names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
