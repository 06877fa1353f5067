package models

// Status is a user-scoped task state label. Per-user name uniqueness is a
// convention, not a constraint.
type Status struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(50);not null" json:"name"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Priority is a user-scoped importance label.
type Priority struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(50);not null" json:"name"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Tag is a user-scoped free-form label, attached to tasks many-to-many.
type Tag struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(50);not null" json:"name"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
