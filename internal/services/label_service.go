package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLabelNameRequired = errors.New("name is required")
	ErrLabelNotFound     = errors.New("label not found")
)

// LabelInUseError reports a refused status/priority deletion; the message is
// shown to the user verbatim.
type LabelInUseError struct {
	Name string
}

func (e *LabelInUseError) Error() string {
	return fmt.Sprintf("Cannot delete %s because it is used at a task", e.Name)
}

// LabelService handles the per-user status/priority/tag configuration.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{labelRepo: labelRepo}
}

// LabelOverview is the full label configuration of one user.
type LabelOverview struct {
	Statuses   []models.Status
	Priorities []models.Priority
	Tags       []models.Tag
}

// Overview lists all labels owned by the user.
func (s *LabelService) Overview(userID uint64) (*LabelOverview, error) {
	statuses, err := s.labelRepo.ListStatuses(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	priorities, err := s.labelRepo.ListPriorities(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	tags, err := s.labelRepo.ListTags(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return &LabelOverview{
		Statuses:   statuses,
		Priorities: priorities,
		Tags:       tags,
	}, nil
}

// CreateStatus creates a status owned by the user.
func (s *LabelService) CreateStatus(userID uint64, name string) (*models.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLabelNameRequired
	}
	status := &models.Status{UserID: userID, Name: name}
	if err := s.labelRepo.CreateStatus(status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return status, nil
}

// CreatePriority creates a priority owned by the user.
func (s *LabelService) CreatePriority(userID uint64, name string) (*models.Priority, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLabelNameRequired
	}
	priority := &models.Priority{UserID: userID, Name: name}
	if err := s.labelRepo.CreatePriority(priority); err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}
	return priority, nil
}

// CreateTag creates a tag owned by the user.
func (s *LabelService) CreateTag(userID uint64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLabelNameRequired
	}
	tag := &models.Tag{UserID: userID, Name: name}
	if err := s.labelRepo.CreateTag(tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// DeleteStatus deletes a status owned by the actor. A status still
// referenced by a task is protected and stays put.
func (s *LabelService) DeleteStatus(id, actorID uint64) error {
	status, err := s.labelRepo.FindStatus(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find status: %w", err)
	}
	if status.UserID != actorID {
		return ErrLabelNotFound
	}

	if err := s.labelRepo.DeleteStatus(id); err != nil {
		if errors.Is(err, repository.ErrLabelInUse) {
			return &LabelInUseError{Name: status.Name}
		}
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}

// DeletePriority deletes a priority owned by the actor, with the same
// referential protection as statuses.
func (s *LabelService) DeletePriority(id, actorID uint64) error {
	priority, err := s.labelRepo.FindPriority(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find priority: %w", err)
	}
	if priority.UserID != actorID {
		return ErrLabelNotFound
	}

	if err := s.labelRepo.DeletePriority(id); err != nil {
		if errors.Is(err, repository.ErrLabelInUse) {
			return &LabelInUseError{Name: priority.Name}
		}
		return fmt.Errorf("failed to delete priority: %w", err)
	}
	return nil
}

// DeleteTag deletes a tag owned by the actor. Tag deletion cascades to the
// task associations instead of being protected.
func (s *LabelService) DeleteTag(id, actorID uint64) error {
	tag, err := s.labelRepo.FindTag(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}
	if tag.UserID != actorID {
		return ErrLabelNotFound
	}

	if err := s.labelRepo.DeleteTag(id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
