package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/dto"
	apierrors "github.com/nshimizu0918/taskboard/internal/errors"
	"github.com/nshimizu0918/taskboard/internal/middleware"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/search"
	"github.com/nshimizu0918/taskboard/internal/services"
	"github.com/nshimizu0918/taskboard/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of the tasks visible to the current user,
// ordered by creation date. Pages hold 15 tasks by default.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(userID, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID.
// The task is already loaded with relations by RequireTaskVisibility.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task owned by the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		DueDate     string   `json:"due_date" binding:"required"`
		StatusID    uint64   `json:"status_id" binding:"required"`
		AssigneeID  uint64   `json:"assignee_id" binding:"required"`
		PriorityID  uint64   `json:"priority_id" binding:"required"`
		TagIDs      []uint64 `json:"tag_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		StatusID:    req.StatusID,
		AssigneeID:  req.AssigneeID,
		PriorityID:  req.PriorityID,
		TagIDs:      req.TagIDs,
		OwnerID:     userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task. Only the owner may edit.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		DueDate     *string   `json:"due_date"`
		StatusID    *uint64   `json:"status_id"`
		AssigneeID  *uint64   `json:"assignee_id"`
		PriorityID  *uint64   `json:"priority_id"`
		TagIDs      *[]uint64 `json:"tag_ids"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    req.StatusID,
		AssigneeID:  req.AssigneeID,
		PriorityID:  req.PriorityID,
		TagIDs:      req.TagIDs,
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
			return
		}
		input.DueDate = &dueDate
	}

	updated, err := h.taskService.UpdateTask(task.ID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task. Only the owner may delete.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ToggleCompleted flips a task between completed and open, stamping or
// clearing completed_at.
func (h *TaskHandler) ToggleCompleted(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	toggled, err := h.taskService.ToggleCompleted(task.ID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*toggled))
}

// AddComment attaches a comment to a task.
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.taskService.AddComment(task.ID, userID, req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a task's comments, oldest first.
// Visibility is already checked by RequireTaskVisibility.
func (h *TaskHandler) ListComments(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(task.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	dtos := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": dtos,
	})
}

// SearchTasks runs the dynamic search. Blank fields are ignored; a request
// with no criteria at all returns an empty result set.
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	form := search.Form{
		Title:       c.Query("title"),
		Description: c.Query("description"),
		DueDate:     c.Query("due_date"),
		Assignee:    c.Query("assignee"),
		Status:      c.Query("status"),
		Priority:    c.Query("priority"),
		Tags:        c.QueryArray("tag"),
	}

	tasks, err := h.taskService.Search(userID, form)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	results := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		results[i] = dto.ToTaskDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
	})
}

// ImportTasks bulk-creates tasks from a YAML request body.
func (h *TaskHandler) ImportTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		apierrors.BadRequest(c, "Request body must contain YAML")
		return
	}

	count, err := h.taskService.ImportYAML(userID, string(body))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imported": count,
	})
}

// GenerateTasks extracts task suggestions from free text via the AI service.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.taskService.GenerateTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}

	return task, true
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskPermissionDenied):
		// 404 for both, to avoid leaking task existence
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidTags),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrInvalidSearch),
		errors.Is(err, services.ErrImportInvalidYAML),
		errors.Is(err, services.ErrImportNoTasks),
		errors.Is(err, services.ErrImportTitleRequired),
		errors.Is(err, services.ErrImportUnknownTag),
		errors.Is(err, services.ErrNoLabelsConfigured),
		errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
