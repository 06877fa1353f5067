package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/dto"
	apierrors "github.com/nshimizu0918/taskboard/internal/errors"
	"github.com/nshimizu0918/taskboard/internal/middleware"
	"github.com/nshimizu0918/taskboard/internal/services"
)

// LabelHandler coordinates the status/priority/tag configuration handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// ListLabels returns the current user's statuses, priorities and tags.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	overview, err := h.labelService.Overview(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch labels")
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelOverviewDTO(*overview))
}

// CreateStatus creates a status owned by the current user.
func (h *LabelHandler) CreateStatus(c *gin.Context) {
	h.createLabel(c, func(userID uint64, name string) (dto.LabelDTO, error) {
		status, err := h.labelService.CreateStatus(userID, name)
		if err != nil {
			return dto.LabelDTO{}, err
		}
		return dto.LabelDTO{ID: status.ID, Name: status.Name}, nil
	})
}

// CreatePriority creates a priority owned by the current user.
func (h *LabelHandler) CreatePriority(c *gin.Context) {
	h.createLabel(c, func(userID uint64, name string) (dto.LabelDTO, error) {
		priority, err := h.labelService.CreatePriority(userID, name)
		if err != nil {
			return dto.LabelDTO{}, err
		}
		return dto.LabelDTO{ID: priority.ID, Name: priority.Name}, nil
	})
}

// CreateTag creates a tag owned by the current user.
func (h *LabelHandler) CreateTag(c *gin.Context) {
	h.createLabel(c, func(userID uint64, name string) (dto.LabelDTO, error) {
		tag, err := h.labelService.CreateTag(userID, name)
		if err != nil {
			return dto.LabelDTO{}, err
		}
		return dto.LabelDTO{ID: tag.ID, Name: tag.Name}, nil
	})
}

// DeleteStatus deletes a status. The delete is refused with a conflict when
// a task still references the status.
func (h *LabelHandler) DeleteStatus(c *gin.Context) {
	h.deleteLabel(c, h.labelService.DeleteStatus)
}

// DeletePriority deletes a priority, with the same protection as statuses.
func (h *LabelHandler) DeletePriority(c *gin.Context) {
	h.deleteLabel(c, h.labelService.DeletePriority)
}

// DeleteTag deletes a tag and detaches it from any tasks.
func (h *LabelHandler) DeleteTag(c *gin.Context) {
	h.deleteLabel(c, h.labelService.DeleteTag)
}

func (h *LabelHandler) createLabel(c *gin.Context, create func(userID uint64, name string) (dto.LabelDTO, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateLabelRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := create(userID, req.Name)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, label)
}

func (h *LabelHandler) deleteLabel(c *gin.Context, remove func(id, actorID uint64) error) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	labelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	if err := remove(labelID, userID); err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Label deleted successfully",
	})
}

func respondLabelError(c *gin.Context, err error) {
	var inUse *services.LabelInUseError
	switch {
	case errors.As(err, &inUse):
		apierrors.Conflict(c, inUse.Error())
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, "Label not found")
	case errors.Is(err, services.ErrLabelNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
