package services

import (
	"testing"
	"time"

	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTest(t *testing.T) (*gorm.DB, *DashboardService) {
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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewDashboardService(repository.NewTaskRepository(db))
}

func seedDashboardUser(t *testing.T, db *gorm.DB) (*models.User, *models.Status, *models.Priority) {
	t.Helper()

	user := &models.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, db.Create(user).Error)
	status := &models.Status{UserID: user.ID, Name: "To Do"}
	require.NoError(t, db.Create(status).Error)
	priority := &models.Priority{UserID: user.ID, Name: "Low"}
	require.NoError(t, db.Create(priority).Error)

	return user, status, priority
}

func TestDashboard_NoCompletedTasks(t *testing.T) {
	db, service := setupDashboardTest(t)
	user, status, priority := seedDashboardUser(t, db)

	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	overdue := &models.Task{
		UserID:     user.ID,
		Title:      "Late",
		DueDate:    time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(overdue).Error)

	upcoming := &models.Task{
		UserID:     user.ID,
		Title:      "Due soon",
		DueDate:    time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(upcoming).Error)

	dashboard, err := service.Build(user.ID, today)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalTasks)
	assert.Equal(t, 0, dashboard.TotalCompleted)
	assert.Equal(t, 0.0, dashboard.CompletionRate)

	require.Len(t, dashboard.Overdue, 1)
	assert.Equal(t, "Late", dashboard.Overdue[0].Title)
	require.Len(t, dashboard.Upcoming, 1)
	assert.Equal(t, "Due soon", dashboard.Upcoming[0].Title)

	require.Len(t, dashboard.TasksByStatus, 1)
	assert.Equal(t, "To Do", dashboard.TasksByStatus[0].Label)
	assert.Equal(t, 2, dashboard.TasksByStatus[0].Count)

	// The completed-task series stay nil until something is completed
	assert.Nil(t, dashboard.CompletionsPerDay)
	assert.Nil(t, dashboard.TaskDurations)
	assert.Nil(t, dashboard.AssigneeProductivity)
}

func TestDashboard_WithCompletedTasks(t *testing.T) {
	db, service := setupDashboardTest(t)
	user, status, priority := seedDashboardUser(t, db)

	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	completedAt := time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC)

	done := &models.Task{
		UserID:      user.ID,
		Title:       "Done",
		DueDate:     time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		StatusID:    status.ID,
		AssigneeID:  user.ID,
		PriorityID:  priority.ID,
		Completed:   true,
		CompletedAt: &completedAt,
		CreatedAt:   time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(done).Error)

	open := &models.Task{
		UserID:     user.ID,
		Title:      "Open",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(open).Error)

	dashboard, err := service.Build(user.ID, today)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalTasks)
	assert.Equal(t, 1, dashboard.TotalCompleted)
	assert.Equal(t, 50.0, dashboard.CompletionRate)

	require.Len(t, dashboard.CompletionsPerDay, 1)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), dashboard.CompletionsPerDay[0].Date)
	assert.Equal(t, 1, dashboard.CompletionsPerDay[0].Count)

	require.Len(t, dashboard.TaskDurations, 1)
	assert.Equal(t, 3, dashboard.TaskDurations[0].Days)

	require.Len(t, dashboard.AssigneeProductivity, 1)
	assert.Equal(t, "alice", dashboard.AssigneeProductivity[0].Label)
	assert.Equal(t, 1, dashboard.AssigneeProductivity[0].Count)
}

func TestDashboard_OnlyVisibleTasksCount(t *testing.T) {
	db, service := setupDashboardTest(t)
	user, status, priority := seedDashboardUser(t, db)

	other := &models.User{Username: "bob", PasswordHash: "hashed"}
	require.NoError(t, db.Create(other).Error)

	mine := &models.Task{
		UserID:     user.ID,
		Title:      "Mine",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(mine).Error)

	theirs := &models.Task{
		UserID:     other.ID,
		Title:      "Theirs",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: other.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(theirs).Error)

	dashboard, err := service.Build(user.ID, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.TotalTasks)
}
