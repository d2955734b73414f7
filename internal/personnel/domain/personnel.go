package domain

import "time"

// Personnel is a person the owning user can assign to document roles. Rows
// are private to the user who created them.
type Personnel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `json:"role"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
