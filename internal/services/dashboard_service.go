package services

import (
	"fmt"
	"time"

	"github.com/nshimizu0918/taskboard/internal/analytics"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/repository"
)

// DashboardService assembles the home dashboard from a user's visible tasks.
type DashboardService struct {
	taskRepo repository.TaskRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{taskRepo: taskRepo}
}

// Dashboard holds the summary figures and the chart series. The series that
// only make sense with completed tasks stay nil until at least one visible
// task is completed.
type Dashboard struct {
	TotalTasks     int
	TotalCompleted int
	CompletionRate float64

	Overdue  []models.Task
	Upcoming []models.Task

	TasksByStatus        []analytics.LabelCount
	CompletionsPerDay    []analytics.DateCount
	TaskDurations        []analytics.TaskDuration
	AssigneeProductivity []analytics.LabelCount
}

// Build computes the dashboard for a user as of the given day.
func (s *DashboardService) Build(userID uint64, today time.Time) (*Dashboard, error) {
	tasks, err := s.taskRepo.AllVisible(userID, "Status", "Assignee")
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	totalCompleted := 0
	for _, task := range tasks {
		if task.Completed {
			totalCompleted++
		}
	}

	dashboard := &Dashboard{
		TotalTasks:     len(tasks),
		TotalCompleted: totalCompleted,
		CompletionRate: analytics.CompletionRate(len(tasks), totalCompleted),
		Overdue:        analytics.OverdueTasks(tasks, today),
		Upcoming:       analytics.UpcomingTasks(tasks, today),
		TasksByStatus:  analytics.CountByStatus(tasks),
	}

	// The duration series has no empty value, so the whole completed-task
	// group is gated on having at least one completion.
	if totalCompleted > 0 {
		dashboard.CompletionsPerDay = analytics.CompletionsPerDay(tasks, today)
		dashboard.TaskDurations = analytics.TaskDurations(tasks)
		dashboard.AssigneeProductivity = analytics.AssigneeProductivity(tasks)
	}

	return dashboard, nil
}
