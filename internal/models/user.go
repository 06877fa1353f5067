package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks         []Task     `gorm:"foreignKey:UserID" json:"-"`
	AssignedTasks []Task     `gorm:"foreignKey:AssigneeID" json:"-"`
	Statuses      []Status   `gorm:"foreignKey:UserID" json:"-"`
	Priorities    []Priority `gorm:"foreignKey:UserID" json:"-"`
	Tags          []Tag      `gorm:"foreignKey:UserID" json:"-"`
	Comments      []Comment  `gorm:"foreignKey:AuthorID" json:"-"`
}
