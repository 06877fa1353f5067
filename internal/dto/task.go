package dto

import (
	"time"

	"github.com/nshimizu0918/taskboard/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// LabelDTO represents a status, priority or tag in API responses
type LabelDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"due_date"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at"`
	OwnerID     uint64       `json:"owner_id"`
	AssigneeID  uint64       `json:"assignee_id"`
	StatusID    uint64       `json:"status_id"`
	PriorityID  uint64       `json:"priority_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Owner       *UserDTO     `json:"owner,omitempty"`
	Assignee    *UserDTO     `json:"assignee,omitempty"`
	Status      *LabelDTO    `json:"status,omitempty"`
	Priority    *LabelDTO    `json:"priority,omitempty"`
	Tags        []LabelDTO   `json:"tags,omitempty"`
	Comments    []CommentDTO `json:"comments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"due_date"`
	Completed bool      `json:"completed"`
	Status    *LabelDTO `json:"status,omitempty"`
	Priority  *LabelDTO `json:"priority,omitempty"`
	Assignee  *UserDTO  `json:"assignee,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		OwnerID:     task.UserID,
		AssigneeID:  task.AssigneeID,
		StatusID:    task.StatusID,
		PriorityID:  task.PriorityID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Relations are included only when preloaded
	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}
	if task.Assignee.ID != 0 {
		assignee := ToUserDTO(task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Status.ID != 0 {
		dto.Status = &LabelDTO{ID: task.Status.ID, Name: task.Status.Name}
	}
	if task.Priority.ID != 0 {
		dto.Priority = &LabelDTO{ID: task.Priority.ID, Name: task.Priority.Name}
	}

	if len(task.Tags) > 0 {
		dto.Tags = make([]LabelDTO, len(task.Tags))
		for i, tag := range task.Tags {
			dto.Tags[i] = LabelDTO{ID: tag.ID, Name: tag.Name}
		}
	}

	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:        task.ID,
		Title:     task.Title,
		DueDate:   task.DueDate,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}

	if task.Status.ID != 0 {
		dto.Status = &LabelDTO{ID: task.Status.ID, Name: task.Status.Name}
	}
	if task.Priority.ID != 0 {
		dto.Priority = &LabelDTO{ID: task.Priority.ID, Name: task.Priority.Name}
	}
	if task.Assignee.ID != 0 {
		assignee := ToUserDTO(task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
