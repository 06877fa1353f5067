package models

import (
	"time"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	StatusID    uint64     `gorm:"not null" json:"status_id"`
	AssigneeID  uint64     `gorm:"not null;index" json:"assignee_id"`
	PriorityID  uint64     `gorm:"not null" json:"priority_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Owner    User      `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Assignee User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Status   Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Priority Priority  `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Tags     []Tag     `gorm:"many2many:task_tags" json:"tags,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// VisibleTo reports whether the task may be seen by the given user.
// A task is visible to its owner and its assignee, nobody else.
func (t *Task) VisibleTo(userID uint64) bool {
	return t.UserID == userID || t.AssigneeID == userID
}
