// Package analytics derives chart-ready series from a user's visible task
// set. Every function is a pure aggregation over the slice it is given;
// visibility filtering happens upstream.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/nshimizu0918/taskboard/internal/constants"
	"github.com/nshimizu0918/taskboard/internal/models"
)

// DateCount is one point of a per-day series.
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// LabelCount is one (label, value) pair for bar and pie charts.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TaskDuration is how long one completed task took, in whole days.
type TaskDuration struct {
	Days  int    `json:"days"`
	Title string `json:"title"`
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CompletionsPerDay counts completed tasks per completion date over the
// inclusive window of the last 30 days ending today. Days with no
// completions are omitted; the series is sorted by date ascending.
func CompletionsPerDay(tasks []models.Task, today time.Time) []DateCount {
	end := DateOf(today)
	start := end.AddDate(0, 0, -constants.CompletionsWindowDays)

	counts := make(map[time.Time]int)
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		day := DateOf(*task.CompletedAt)
		if day.Before(start) || day.After(end) {
			continue
		}
		counts[day]++
	}

	series := make([]DateCount, 0, len(counts))
	for day, count := range counts {
		series = append(series, DateCount{Date: day, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}

// CountByStatus groups all given tasks, completed or not, by their status
// name. Pairs appear in first-seen order; consumers render shares, so order
// carries no meaning.
func CountByStatus(tasks []models.Task) []LabelCount {
	return countBy(tasks, func(task models.Task) (string, bool) {
		return task.Status.Name, true
	})
}

// TaskDurations reports, for each completed task, the whole days between
// creation and completion dates plus one. A task completed the day it was
// created has duration 1, never 0, so its chart bar stays visible.
//
// The series has no empty value: callers must only invoke it when at least
// one completed task exists.
func TaskDurations(tasks []models.Task) []TaskDuration {
	var durations []TaskDuration
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		days := int(DateOf(*task.CompletedAt).Sub(DateOf(task.CreatedAt)).Hours()/24) + 1
		durations = append(durations, TaskDuration{Days: days, Title: task.Title})
	}
	return durations
}

// AssigneeProductivity counts completed tasks per assignee. The same pairs
// back both the grouped bar series and the share-of-total pie.
func AssigneeProductivity(tasks []models.Task) []LabelCount {
	return countBy(tasks, func(task models.Task) (string, bool) {
		if !task.Completed {
			return "", false
		}
		return task.Assignee.Username, true
	})
}

// CompletionRate is the completed share of all tasks as a percentage,
// rounded to two decimals. Zero tasks yield zero, not a division error.
func CompletionRate(total, completed int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

// OverdueTasks returns the incomplete tasks due before today, sorted by due
// date ascending.
func OverdueTasks(tasks []models.Task, today time.Time) []models.Task {
	cutoff := DateOf(today)
	var overdue []models.Task
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if DateOf(task.DueDate).Before(cutoff) {
			overdue = append(overdue, task)
		}
	}
	sortByDueDate(overdue)
	return overdue
}

// UpcomingTasks returns the incomplete tasks due between today and three
// days out, inclusive, sorted by due date ascending.
func UpcomingTasks(tasks []models.Task, today time.Time) []models.Task {
	from := DateOf(today)
	to := from.AddDate(0, 0, constants.UpcomingDueDays)
	var upcoming []models.Task
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		due := DateOf(task.DueDate)
		if !due.Before(from) && !due.After(to) {
			upcoming = append(upcoming, task)
		}
	}
	sortByDueDate(upcoming)
	return upcoming
}

func sortByDueDate(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}

func countBy(tasks []models.Task, key func(models.Task) (string, bool)) []LabelCount {
	index := make(map[string]int)
	var pairs []LabelCount
	for _, task := range tasks {
		label, ok := key(task)
		if !ok {
			continue
		}
		if i, seen := index[label]; seen {
			pairs[i].Count++
			continue
		}
		index[label] = len(pairs)
		pairs = append(pairs, LabelCount{Label: label, Count: 1})
	}
	return pairs
}
