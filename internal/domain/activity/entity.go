// internal/domain/activity/entity.go
package activity

import (
	"time"
)

// UserActivity is an append-only record of a user-attributed action. Rows are
// never updated or deleted; the email and fullname are denormalized so the
// trail survives user deletion.
type UserActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	FullName  string    `gorm:"column:fullname;not null;size:255" json:"fullname"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for UserActivity
func (UserActivity) TableName() string {
	return "user_activities"
}
