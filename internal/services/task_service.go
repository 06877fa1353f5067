package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nshimizu0918/taskboard/internal/constants"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/repository"
	"github.com/nshimizu0918/taskboard/internal/search"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotTaskOwner         = errors.New("only the task owner can perform this action")
	ErrTaskPermissionDenied = errors.New("user does not have permission to access this task")
	ErrTitleRequired        = errors.New("title is required")
	ErrContentRequired      = errors.New("content is required")
	ErrInvalidStatus        = errors.New("status does not exist or belongs to another user")
	ErrInvalidPriority      = errors.New("priority does not exist or belongs to another user")
	ErrInvalidTags          = errors.New("one or more tags do not exist or belong to another user")
	ErrInvalidAssignee      = errors.New("assignee does not exist")
	ErrInvalidSearch        = errors.New("invalid search criteria")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// taskDetailPreloads are the relations loaded for a task detail view.
var taskDetailPreloads = []string{"Owner", "Assignee", "Status", "Priority", "Tags", "Comments", "Comments.Author"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	labelRepo   repository.LabelRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	aiService   *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, labelRepo repository.LabelRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		labelRepo:   labelRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		aiService:   aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	StatusID    uint64
	AssigneeID  uint64
	PriorityID  uint64
	TagIDs      []uint64
	OwnerID     uint64
}

// UpdateTaskInput represents input for updating a task; nil fields are left
// unchanged
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	StatusID    *uint64
	AssigneeID  *uint64
	PriorityID  *uint64
	TagIDs      *[]uint64
}

// ListTasks returns one page of the tasks visible to a user
func (s *TaskService) ListTasks(userID uint64, page, pageSize int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListVisible(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// CreateTask creates a new task owned by the actor. Status, priority and
// tags must belong to the owner; the assignee must exist.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	tags, err := s.validateTaskRefs(input.OwnerID, input.StatusID, input.PriorityID, input.AssigneeID, input.TagIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		StatusID:    input.StatusID,
		AssigneeID:  input.AssigneeID,
		PriorityID:  input.PriorityID,
		Tags:        tags,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// UpdateTask updates an existing task. Only the owner may edit.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != actorID {
		return nil, ErrNotTaskOwner
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.StatusID != nil {
		if err := s.ensureOwnedStatus(task.UserID, *input.StatusID); err != nil {
			return nil, err
		}
		task.StatusID = *input.StatusID
	}
	if input.PriorityID != nil {
		if err := s.ensureOwnedPriority(task.UserID, *input.PriorityID); err != nil {
			return nil, err
		}
		task.PriorityID = *input.PriorityID
	}
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidAssignee
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		task.AssigneeID = *input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.TagIDs != nil {
		tags, err := s.resolveOwnedTags(task.UserID, *input.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceTags(task, tags); err != nil {
			return nil, fmt.Errorf("failed to update tags: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// DeleteTask deletes a task if the actor is the owner
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != actorID {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ToggleCompleted flips a task's completed flag, setting completed_at to now
// when completing and clearing it when reopening. Owner and assignee may
// toggle.
func (s *TaskService) ToggleCompleted(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.VisibleTo(actorID) {
		return nil, ErrTaskPermissionDenied
	}

	if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
	} else {
		now := time.Now()
		task.Completed = true
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle completed: %w", err)
	}

	return task, nil
}

// Search composes the given form into a predicate and runs it. A form with
// no criteria yields an empty result set without touching the store.
func (s *TaskService) Search(userID uint64, form search.Form) ([]models.Task, error) {
	query, err := search.Compose(userID, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, err)
	}

	if query.Empty() {
		return []models.Task{}, nil
	}

	tasks, err := s.taskRepo.Search(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	return tasks, nil
}

// AddComment attaches a comment to a task on behalf of the author
func (s *TaskService) AddComment(taskID, authorID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.VisibleTo(authorID) {
		return nil, ErrTaskPermissionDenied
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	author, err := s.userRepo.FindByID(authorID)
	if err == nil {
		comment.Author = *author
	}

	return comment, nil
}

// ListComments returns a task's comments, oldest first.
func (s *TaskService) ListComments(taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GenerateTasks uses AI to suggest tasks extracted from free text. The
// suggestions are returned to the caller; nothing is persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.Title) == "" {
			continue
		}

		if aiTask.DueDate != nil {
			if aiTask.DueDate.Before(cutoff) {
				aiTask.DueDate = nil
			}
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *TaskService) validateTaskRefs(ownerID, statusID, priorityID, assigneeID uint64, tagIDs []uint64) ([]models.Tag, error) {
	if err := s.ensureOwnedStatus(ownerID, statusID); err != nil {
		return nil, err
	}
	if err := s.ensureOwnedPriority(ownerID, priorityID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}
	return s.resolveOwnedTags(ownerID, tagIDs)
}

func (s *TaskService) ensureOwnedStatus(ownerID, statusID uint64) error {
	status, err := s.labelRepo.FindStatus(statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidStatus
		}
		return fmt.Errorf("failed to verify status: %w", err)
	}
	if status.UserID != ownerID {
		return ErrInvalidStatus
	}
	return nil
}

func (s *TaskService) ensureOwnedPriority(ownerID, priorityID uint64) error {
	priority, err := s.labelRepo.FindPriority(priorityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidPriority
		}
		return fmt.Errorf("failed to verify priority: %w", err)
	}
	if priority.UserID != ownerID {
		return ErrInvalidPriority
	}
	return nil
}

func (s *TaskService) resolveOwnedTags(ownerID uint64, tagIDs []uint64) ([]models.Tag, error) {
	uniqueIDs := uniqueUint64(tagIDs)
	tags, err := s.labelRepo.TagsByIDs(ownerID, uniqueIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify tags: %w", err)
	}
	if len(tags) != len(uniqueIDs) {
		return nil, ErrInvalidTags
	}
	return tags, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
