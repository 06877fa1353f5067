package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/database"
	apierrors "github.com/nshimizu0918/taskboard/internal/errors"
	"github.com/nshimizu0918/taskboard/internal/models"
)

// RequireTaskVisibility checks that the current user may see the task:
// the user must be its owner or its assignee.
func RequireTaskVisibility() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get task ID from URL parameter
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		// Get current user ID
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Owner").
			Preload("Assignee").
			Preload("Status").
			Preload("Priority").
			Preload("Tags").
			Preload("Comments").
			Preload("Comments.Author").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking task existence
		if !task.VisibleTo(userID) {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}
