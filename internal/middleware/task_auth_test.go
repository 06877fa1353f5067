package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/database"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVisibilityTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Priority{},
		&models.Tag{},
		&models.Task{},
		&models.Comment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return db
}

func seedVisibilityTask(t *testing.T, db *gorm.DB) (*models.User, *models.User, *models.Task) {
	t.Helper()

	owner := &models.User{Username: "owner", PasswordHash: "hashed"}
	require.NoError(t, db.Create(owner).Error)
	stranger := &models.User{Username: "stranger", PasswordHash: "hashed"}
	require.NoError(t, db.Create(stranger).Error)

	status := &models.Status{UserID: owner.ID, Name: "To Do"}
	require.NoError(t, db.Create(status).Error)
	priority := &models.Priority{UserID: owner.ID, Name: "Low"}
	require.NoError(t, db.Create(priority).Error)

	task := &models.Task{
		UserID:     owner.ID,
		Title:      "Guarded",
		DueDate:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: owner.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(task).Error)

	return owner, stranger, task
}

func visibilityContext(userID uint64, taskID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID, nil)
	c.Params = gin.Params{{Key: "id", Value: taskID}}
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, w
}

func TestRequireTaskVisibility_OwnerPasses(t *testing.T) {
	db := setupVisibilityTest(t)
	owner, _, task := seedVisibilityTask(t, db)

	c, w := visibilityContext(owner.ID, "1")
	RequireTaskVisibility()(c)

	require.False(t, c.IsAborted())
	require.Equal(t, http.StatusOK, w.Code)

	loaded, exists := c.Get("task")
	require.True(t, exists)
	require.Equal(t, task.ID, loaded.(models.Task).ID)
}

func TestRequireTaskVisibility_StrangerGets404(t *testing.T) {
	db := setupVisibilityTest(t)
	_, stranger, _ := seedVisibilityTask(t, db)

	// Existence must not leak, so this is 404 rather than 403
	c, w := visibilityContext(stranger.ID, "1")
	RequireTaskVisibility()(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireTaskVisibility_MissingTask(t *testing.T) {
	db := setupVisibilityTest(t)
	owner, _, _ := seedVisibilityTask(t, db)

	c, w := visibilityContext(owner.ID, "999")
	RequireTaskVisibility()(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireTaskVisibility_BadID(t *testing.T) {
	db := setupVisibilityTest(t)
	owner, _, _ := seedVisibilityTask(t, db)

	c, w := visibilityContext(owner.ID, "abc")
	RequireTaskVisibility()(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireTaskVisibility_Unauthenticated(t *testing.T) {
	setupVisibilityTest(t)

	c, w := visibilityContext(0, "1")
	RequireTaskVisibility()(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
