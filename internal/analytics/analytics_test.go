package analytics

import (
	"testing"
	"time"

	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func completedTask(title string, createdAt, completedAt time.Time) models.Task {
	return models.Task{
		Title:       title,
		CreatedAt:   createdAt,
		Completed:   true,
		CompletedAt: &completedAt,
	}
}

func TestCompletionsPerDay(t *testing.T) {
	today := date(2026, 8, 31)

	tasks := []models.Task{
		completedTask("in window a", date(2026, 8, 1), date(2026, 8, 10)),
		completedTask("in window b", date(2026, 8, 1), date(2026, 8, 10)),
		completedTask("window start", date(2026, 7, 1), date(2026, 8, 1)),
		completedTask("window end", date(2026, 8, 30), date(2026, 8, 31)),
		completedTask("too old", date(2026, 6, 1), date(2026, 7, 31)),
		completedTask("future", date(2026, 8, 31), date(2026, 9, 1)),
		{Title: "not completed", CreatedAt: date(2026, 8, 1)},
	}

	series := CompletionsPerDay(tasks, today)

	require.Len(t, series, 3)

	// Sorted ascending, sparse, all counts positive
	assert.Equal(t, date(2026, 8, 1), series[0].Date)
	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, date(2026, 8, 10), series[1].Date)
	assert.Equal(t, 2, series[1].Count)
	assert.Equal(t, date(2026, 8, 31), series[2].Date)
	assert.Equal(t, 1, series[2].Count)

	start := today.AddDate(0, 0, -30)
	for _, point := range series {
		assert.Positive(t, point.Count)
		assert.False(t, point.Date.Before(start))
		assert.False(t, point.Date.After(today))
	}
}

func TestCompletionsPerDay_Empty(t *testing.T) {
	series := CompletionsPerDay(nil, date(2026, 8, 31))
	assert.Empty(t, series)
}

func TestCountByStatus(t *testing.T) {
	tasks := []models.Task{
		{Status: models.Status{ID: 1, Name: "To Do"}},
		{Status: models.Status{ID: 1, Name: "To Do"}},
		{Status: models.Status{ID: 2, Name: "In Progress"}, Completed: true},
	}

	pairs := CountByStatus(tasks)

	require.Len(t, pairs, 2)
	assert.Equal(t, LabelCount{Label: "To Do", Count: 2}, pairs[0])
	assert.Equal(t, LabelCount{Label: "In Progress", Count: 1}, pairs[1])
}

func TestTaskDurations(t *testing.T) {
	tasks := []models.Task{
		completedTask("same day", date(2026, 8, 10), date(2026, 8, 10)),
		completedTask("three days", date(2026, 8, 10), date(2026, 8, 12)),
		{Title: "open", CreatedAt: date(2026, 8, 10)},
	}

	durations := TaskDurations(tasks)

	require.Len(t, durations, 2)
	assert.Equal(t, TaskDuration{Days: 1, Title: "same day"}, durations[0])
	assert.Equal(t, TaskDuration{Days: 3, Title: "three days"}, durations[1])
}

func TestTaskDurations_SameDayNeverZero(t *testing.T) {
	// Completion later the same calendar day still counts as one day
	created := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	completed := time.Date(2026, 8, 10, 17, 0, 0, 0, time.UTC)

	durations := TaskDurations([]models.Task{completedTask("quick", created, completed)})

	require.Len(t, durations, 1)
	assert.Equal(t, 1, durations[0].Days)
}

func TestAssigneeProductivity(t *testing.T) {
	alice := models.User{ID: 1, Username: "alice"}
	bob := models.User{ID: 2, Username: "bob"}

	done := date(2026, 8, 10)
	tasks := []models.Task{
		{Assignee: alice, Completed: true, CompletedAt: &done},
		{Assignee: alice, Completed: true, CompletedAt: &done},
		{Assignee: bob, Completed: true, CompletedAt: &done},
		{Assignee: bob}, // open tasks do not count
	}

	pairs := AssigneeProductivity(tasks)

	require.Len(t, pairs, 2)
	assert.Equal(t, LabelCount{Label: "alice", Count: 2}, pairs[0])
	assert.Equal(t, LabelCount{Label: "bob", Count: 1}, pairs[1])
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
	assert.Equal(t, 50.0, CompletionRate(2, 1))
	assert.Equal(t, 33.33, CompletionRate(3, 1))
	assert.Equal(t, 100.0, CompletionRate(5, 5))
}

func TestOverdueAndUpcomingTasks(t *testing.T) {
	today := date(2026, 8, 31)

	overdueOld := models.Task{Title: "very late", DueDate: date(2026, 8, 1)}
	overdueRecent := models.Task{Title: "late", DueDate: date(2026, 8, 30)}
	dueToday := models.Task{Title: "today", DueDate: today}
	dueSoon := models.Task{Title: "soon", DueDate: date(2026, 9, 3)}
	dueLater := models.Task{Title: "later", DueDate: date(2026, 9, 4)}
	doneAt := date(2026, 8, 20)
	completedLate := models.Task{Title: "done late", DueDate: date(2026, 8, 1), Completed: true, CompletedAt: &doneAt}

	tasks := []models.Task{dueLater, overdueRecent, dueToday, completedLate, overdueOld, dueSoon}

	overdue := OverdueTasks(tasks, today)
	require.Len(t, overdue, 2)
	assert.Equal(t, "very late", overdue[0].Title)
	assert.Equal(t, "late", overdue[1].Title)

	upcoming := UpcomingTasks(tasks, today)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "today", upcoming[0].Title)
	assert.Equal(t, "soon", upcoming[1].Title)
}
