package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nshimizu0918/taskboard/internal/constants"
	"gorm.io/gorm"
)

// Criterion is a single search predicate fragment. Each criterion kind is its
// own type; a query folds all of them onto one GORM statement with AND.
type Criterion interface {
	apply(db *gorm.DB) *gorm.DB
}

// TitleContains matches tasks whose title contains the value,
// case-insensitively.
type TitleContains string

func (t TitleContains) apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(tasks.title) LIKE ?", "%"+strings.ToLower(string(t))+"%")
}

// DescriptionContains matches tasks whose description contains the value,
// case-insensitively.
type DescriptionContains string

func (d DescriptionContains) apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(tasks.description) LIKE ?", "%"+strings.ToLower(string(d))+"%")
}

// DueOn matches tasks due exactly on the given date.
type DueOn time.Time

func (d DueOn) apply(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.due_date = ?", time.Time(d))
}

// AssigneeIs matches tasks assigned to the given user.
type AssigneeIs uint64

func (a AssigneeIs) apply(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.assignee_id = ?", uint64(a))
}

// PriorityIs matches tasks with the given priority.
type PriorityIs uint64

func (p PriorityIs) apply(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.priority_id = ?", uint64(p))
}

// StatusIs matches tasks with the given stored status. A task carrying a
// status is by definition still in progress, so the criterion also requires
// completed = false.
type StatusIs uint64

func (s StatusIs) apply(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.status_id = ?", uint64(s)).Where("tasks.completed = ?", false)
}

// CompletedOnly is what the synthetic "Completed" status choice translates
// to: completed = true, with no status reference filter at all.
type CompletedOnly struct{}

func (CompletedOnly) apply(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.completed = ?", true)
}

// HasAnyTag matches tasks carrying at least one of the given tags.
type HasAnyTag []uint64

func (t HasAnyTag) apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM task_tags WHERE task_tags.task_id = tasks.id AND task_tags.tag_id IN ?)",
		[]uint64(t),
	)
}

// Query is a composed search: a criterion set scoped to one user.
type Query struct {
	UserID   uint64
	Criteria []Criterion
}

// Empty reports whether no criteria were supplied. An empty query returns no
// results; callers must not run it against the store. This mirrors the
// product's long-standing behavior for a blank search form.
func (q Query) Empty() bool {
	return len(q.Criteria) == 0
}

// Apply folds the criteria onto db. The visibility constraint (owner or
// assignee is the searching user) is always conjoined, whatever criteria
// were supplied.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("tasks.user_id = ? OR tasks.assignee_id = ?", q.UserID, q.UserID)
	for _, c := range q.Criteria {
		db = c.apply(db)
	}
	return db
}

// Form carries the raw optional search fields as submitted. Blank fields
// mean "no selection" and contribute nothing to the query.
type Form struct {
	Title       string
	Description string
	DueDate     string
	Assignee    string
	Status      string
	Priority    string
	Tags        []string
}

// Compose translates a form into a Query, skipping blank fields. The status
// field understands the synthetic Completed choice (-1).
func Compose(userID uint64, form Form) (Query, error) {
	q := Query{UserID: userID}

	if form.Title != "" {
		q.Criteria = append(q.Criteria, TitleContains(form.Title))
	}
	if form.Description != "" {
		q.Criteria = append(q.Criteria, DescriptionContains(form.Description))
	}
	if form.DueDate != "" {
		due, err := time.Parse("2006-01-02", form.DueDate)
		if err != nil {
			return Query{}, fmt.Errorf("invalid due date %q: %w", form.DueDate, err)
		}
		q.Criteria = append(q.Criteria, DueOn(due.UTC()))
	}
	if form.Status != "" {
		statusID, err := strconv.ParseInt(form.Status, 10, 64)
		if err != nil {
			return Query{}, fmt.Errorf("invalid status %q: %w", form.Status, err)
		}
		if statusID == constants.CompletedStatusID {
			q.Criteria = append(q.Criteria, CompletedOnly{})
		} else {
			q.Criteria = append(q.Criteria, StatusIs(uint64(statusID)))
		}
	}
	if form.Assignee != "" {
		assigneeID, err := strconv.ParseUint(form.Assignee, 10, 64)
		if err != nil {
			return Query{}, fmt.Errorf("invalid assignee %q: %w", form.Assignee, err)
		}
		q.Criteria = append(q.Criteria, AssigneeIs(assigneeID))
	}
	if form.Priority != "" {
		priorityID, err := strconv.ParseUint(form.Priority, 10, 64)
		if err != nil {
			return Query{}, fmt.Errorf("invalid priority %q: %w", form.Priority, err)
		}
		q.Criteria = append(q.Criteria, PriorityIs(priorityID))
	}

	var tagIDs []uint64
	for _, raw := range form.Tags {
		if raw == "" {
			continue
		}
		tagID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Query{}, fmt.Errorf("invalid tag %q: %w", raw, err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if len(tagIDs) > 0 {
		q.Criteria = append(q.Criteria, HasAnyTag(tagIDs))
	}

	return q, nil
}
