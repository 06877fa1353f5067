package search

import (
	"testing"
	"time"

	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSearchDB(t *testing.T) *gorm.DB {
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

	return db
}

func createSearchUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createSearchLabels(t *testing.T, db *gorm.DB, userID uint64) (*models.Status, *models.Priority) {
	t.Helper()
	status := &models.Status{UserID: userID, Name: "To Do"}
	require.NoError(t, db.Create(status).Error)
	priority := &models.Priority{UserID: userID, Name: "Low"}
	require.NoError(t, db.Create(priority).Error)
	return status, priority
}

func runQuery(t *testing.T, db *gorm.DB, q Query) []models.Task {
	t.Helper()
	var tasks []models.Task
	require.NoError(t, q.Apply(db.Model(&models.Task{})).Find(&tasks).Error)
	return tasks
}

func TestCompose_BlankFormIsEmpty(t *testing.T) {
	q, err := Compose(1, Form{})
	require.NoError(t, err)
	assert.True(t, q.Empty())
}

func TestCompose_BlankFieldsContributeNothing(t *testing.T) {
	q, err := Compose(1, Form{Title: "report", Tags: []string{"", ""}})
	require.NoError(t, err)
	require.Len(t, q.Criteria, 1)
	assert.Equal(t, TitleContains("report"), q.Criteria[0])
}

func TestCompose_SentinelStatus(t *testing.T) {
	q, err := Compose(1, Form{Status: "-1"})
	require.NoError(t, err)
	require.Len(t, q.Criteria, 1)
	assert.Equal(t, CompletedOnly{}, q.Criteria[0])
}

func TestCompose_StoredStatus(t *testing.T) {
	q, err := Compose(1, Form{Status: "7"})
	require.NoError(t, err)
	require.Len(t, q.Criteria, 1)
	assert.Equal(t, StatusIs(7), q.Criteria[0])
}

func TestCompose_InvalidInput(t *testing.T) {
	_, err := Compose(1, Form{DueDate: "not-a-date"})
	assert.Error(t, err)

	_, err = Compose(1, Form{Status: "abc"})
	assert.Error(t, err)

	_, err = Compose(1, Form{Tags: []string{"1", "x"}})
	assert.Error(t, err)
}

func TestApply_VisibilityAlwaysEnforced(t *testing.T) {
	db := setupSearchDB(t)
	owner := createSearchUser(t, db, "owner")
	assignee := createSearchUser(t, db, "assignee")
	stranger := createSearchUser(t, db, "stranger")
	status, priority := createSearchLabels(t, db, owner.ID)

	task := &models.Task{
		UserID:     owner.ID,
		Title:      "Quarterly report",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: assignee.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(task).Error)

	criteria := []Criterion{TitleContains("report")}

	assert.Len(t, runQuery(t, db, Query{UserID: owner.ID, Criteria: criteria}), 1)
	assert.Len(t, runQuery(t, db, Query{UserID: assignee.ID, Criteria: criteria}), 1)
	assert.Empty(t, runQuery(t, db, Query{UserID: stranger.ID, Criteria: criteria}))
}

func TestApply_TitleAndDescriptionCaseInsensitive(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)

	task := &models.Task{
		UserID:      user.ID,
		Title:       "Fix The Boiler",
		Description: "Call the Plumber first",
		DueDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:    status.ID,
		AssigneeID:  user.ID,
		PriorityID:  priority.ID,
	}
	require.NoError(t, db.Create(task).Error)

	assert.Len(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{TitleContains("boiler")}}), 1)
	assert.Len(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{DescriptionContains("PLUMBER")}}), 1)
	assert.Empty(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{TitleContains("plumber")}}))
}

func TestApply_StatusExcludesCompleted(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)

	open := &models.Task{
		UserID:     user.ID,
		Title:      "open",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
	}
	require.NoError(t, db.Create(open).Error)

	doneAt := time.Now()
	done := &models.Task{
		UserID:      user.ID,
		Title:       "done",
		DueDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:    status.ID,
		AssigneeID:  user.ID,
		PriorityID:  priority.ID,
		Completed:   true,
		CompletedAt: &doneAt,
	}
	require.NoError(t, db.Create(done).Error)

	// A stored status only matches open tasks, even when the completed
	// task still references the same status row
	byStatus := runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{StatusIs(status.ID)}})
	require.Len(t, byStatus, 1)
	assert.Equal(t, "open", byStatus[0].Title)

	completed := runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{CompletedOnly{}}})
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].Title)
}

func TestApply_CompletedIgnoresStatusReference(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)
	other := &models.Status{UserID: user.ID, Name: "On Hold"}
	require.NoError(t, db.Create(other).Error)

	doneAt := time.Now()
	for i, statusID := range []uint64{status.ID, other.ID} {
		task := &models.Task{
			UserID:      user.ID,
			Title:       "done",
			DueDate:     time.Date(2026, 9, 10+i, 0, 0, 0, 0, time.UTC),
			StatusID:    statusID,
			AssigneeID:  user.ID,
			PriorityID:  priority.ID,
			Completed:   true,
			CompletedAt: &doneAt,
		}
		require.NoError(t, db.Create(task).Error)
	}

	completed := runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{CompletedOnly{}}})
	assert.Len(t, completed, 2)
}

func TestApply_DueOnExactDate(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)

	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	for i, date := range []time.Time{due, due.AddDate(0, 0, 1)} {
		task := &models.Task{
			UserID:     user.ID,
			Title:      []string{"on the day", "day after"}[i],
			DueDate:    date,
			StatusID:   status.ID,
			AssigneeID: user.ID,
			PriorityID: priority.ID,
		}
		require.NoError(t, db.Create(task).Error)
	}

	tasks := runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{DueOn(due)}})
	require.Len(t, tasks, 1)
	assert.Equal(t, "on the day", tasks[0].Title)
}

func TestApply_HasAnyTag(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)

	home := &models.Tag{UserID: user.ID, Name: "Home Task"}
	work := &models.Tag{UserID: user.ID, Name: "Work"}
	unused := &models.Tag{UserID: user.ID, Name: "Unused"}
	require.NoError(t, db.Create(home).Error)
	require.NoError(t, db.Create(work).Error)
	require.NoError(t, db.Create(unused).Error)

	task := &models.Task{
		UserID:     user.ID,
		Title:      "tagged",
		DueDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StatusID:   status.ID,
		AssigneeID: user.ID,
		PriorityID: priority.ID,
		Tags:       []models.Tag{*home, *work},
	}
	require.NoError(t, db.Create(task).Error)

	// Any-of semantics, and a task carrying two matching tags comes back once
	assert.Len(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{HasAnyTag{home.ID, unused.ID}}}), 1)
	assert.Len(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{HasAnyTag{home.ID, work.ID}}}), 1)
	assert.Empty(t, runQuery(t, db, Query{UserID: user.ID, Criteria: []Criterion{HasAnyTag{unused.ID}}}))
}

func TestApply_CriteriaConjoin(t *testing.T) {
	db := setupSearchDB(t)
	user := createSearchUser(t, db, "alice")
	status, priority := createSearchLabels(t, db, user.ID)
	high := &models.Priority{UserID: user.ID, Name: "High"}
	require.NoError(t, db.Create(high).Error)

	for i, p := range []uint64{priority.ID, high.ID} {
		task := &models.Task{
			UserID:     user.ID,
			Title:      "shopping",
			DueDate:    time.Date(2026, 9, 10+i, 0, 0, 0, 0, time.UTC),
			StatusID:   status.ID,
			AssigneeID: user.ID,
			PriorityID: p,
		}
		require.NoError(t, db.Create(task).Error)
	}

	tasks := runQuery(t, db, Query{
		UserID:   user.ID,
		Criteria: []Criterion{TitleContains("shopping"), PriorityIs(high.ID)},
	})
	require.Len(t, tasks, 1)
	assert.Equal(t, high.ID, tasks[0].PriorityID)
}
