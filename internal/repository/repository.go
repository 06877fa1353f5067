package repository

import (
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/search"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithDefaults creates a user together with their default statuses,
	// priorities and tags within a single transaction. A failure on any row
	// rolls back the whole account.
	CreateWithDefaults(user *models.User, statuses []models.Status, priorities []models.Priority, tags []models.Tag) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task, including its tag associations
	Create(task *models.Task) error

	// CreateAll creates several tasks atomically
	CreateAll(tasks []*models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListVisible retrieves one page of the tasks a user may see,
	// ordered by creation
	ListVisible(userID uint64, page, pageSize int) ([]models.Task, int64, error)

	// AllVisible retrieves every task a user may see, with optional preloading
	AllVisible(userID uint64, preload ...string) ([]models.Task, error)

	// Search runs a composed search query. The caller must not pass an
	// empty query; those return no rows by policy.
	Search(query search.Query) ([]models.Task, error)

	// Update persists changes to a task's own columns
	Update(task *models.Task) error

	// ReplaceTags replaces a task's tag associations
	ReplaceTags(task *models.Task, tags []models.Tag) error

	// Delete removes a task along with its comments and tag associations
	Delete(id uint64) error
}

// LabelRepository defines the interface for status/priority/tag data access
type LabelRepository interface {
	ListStatuses(userID uint64) ([]models.Status, error)
	ListPriorities(userID uint64) ([]models.Priority, error)
	ListTags(userID uint64) ([]models.Tag, error)

	CreateStatus(status *models.Status) error
	CreatePriority(priority *models.Priority) error
	CreateTag(tag *models.Tag) error

	FindStatus(id uint64) (*models.Status, error)
	FindPriority(id uint64) (*models.Priority, error)
	FindTag(id uint64) (*models.Tag, error)

	// DeleteStatus removes a status unless a task still references it,
	// in which case it returns ErrLabelInUse and removes nothing.
	DeleteStatus(id uint64) error

	// DeletePriority removes a priority unless a task still references it,
	// in which case it returns ErrLabelInUse and removes nothing.
	DeletePriority(id uint64) error

	// DeleteTag removes a tag and its task associations.
	DeleteTag(id uint64) error

	// TagsByIDs returns the user's tags among the given IDs.
	TagsByIDs(userID uint64, ids []uint64) ([]models.Tag, error)

	// TagsByNames returns the user's tags among the given names.
	TagsByNames(userID uint64, names []string) ([]models.Tag, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// ListByTask lists a task's comments oldest first, with authors loaded
	ListByTask(taskID uint64) ([]models.Comment, error)
}
