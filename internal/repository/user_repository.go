package repository

import (
	"errors"
	"fmt"

	"github.com/nshimizu0918/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the user row fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateStatus is returned when provisioning a default status fails inside the signup transaction.
	ErrCreateStatus = errors.New("user repository: create default status failed")
	// ErrCreatePriority is returned when provisioning a default priority fails inside the signup transaction.
	ErrCreatePriority = errors.New("user repository: create default priority failed")
	// ErrCreateTag is returned when provisioning a default tag fails inside the signup transaction.
	ErrCreateTag = errors.New("user repository: create default tag failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithDefaults creates the user and their default labels atomically.
func (r *GormUserRepository) CreateWithDefaults(user *models.User, statuses []models.Status, priorities []models.Priority, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		for i := range statuses {
			statuses[i].UserID = user.ID
			if err := tx.Create(&statuses[i]).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateStatus, err)
			}
		}

		for i := range priorities {
			priorities[i].UserID = user.ID
			if err := tx.Create(&priorities[i]).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreatePriority, err)
			}
		}

		for i := range tags {
			tags[i].UserID = user.ID
			if err := tx.Create(&tags[i]).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateTag, err)
			}
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
