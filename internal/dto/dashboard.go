package dto

import (
	"time"

	"github.com/nshimizu0918/taskboard/internal/analytics"
	"github.com/nshimizu0918/taskboard/internal/models"
	"github.com/nshimizu0918/taskboard/internal/services"
)

// DueTaskDTO is a minimal task reference for the overdue/upcoming lists.
type DueTaskDTO struct {
	ID      uint64    `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// DashboardDTO is the home dashboard payload: summary figures plus
// chart-ready series. The completed-task series are null until the user has
// completed at least one visible task.
type DashboardDTO struct {
	TotalTasks     int     `json:"total_tasks"`
	TotalCompleted int     `json:"total_completed"`
	CompletionRate float64 `json:"completion_rate"`

	OverdueTasks  []DueTaskDTO `json:"overdue_tasks"`
	UpcomingTasks []DueTaskDTO `json:"upcoming_tasks"`

	TasksByStatus        []analytics.LabelCount   `json:"tasks_by_status"`
	CompletionsPerDay    []analytics.DateCount    `json:"completions_per_day,omitempty"`
	TaskDurations        []analytics.TaskDuration `json:"task_durations,omitempty"`
	AssigneeProductivity []analytics.LabelCount   `json:"assignee_productivity,omitempty"`
}

// ToDashboardDTO converts a computed dashboard into its response shape
func ToDashboardDTO(dashboard services.Dashboard) DashboardDTO {
	return DashboardDTO{
		TotalTasks:           dashboard.TotalTasks,
		TotalCompleted:       dashboard.TotalCompleted,
		CompletionRate:       dashboard.CompletionRate,
		OverdueTasks:         toDueTaskDTOs(dashboard.Overdue),
		UpcomingTasks:        toDueTaskDTOs(dashboard.Upcoming),
		TasksByStatus:        dashboard.TasksByStatus,
		CompletionsPerDay:    dashboard.CompletionsPerDay,
		TaskDurations:        dashboard.TaskDurations,
		AssigneeProductivity: dashboard.AssigneeProductivity,
	}
}

func toDueTaskDTOs(tasks []models.Task) []DueTaskDTO {
	dtos := make([]DueTaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = DueTaskDTO{
			ID:      task.ID,
			Title:   task.Title,
			DueDate: task.DueDate,
		}
	}
	return dtos
}
