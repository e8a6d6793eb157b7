// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Role represents a user's role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleSale    Role = "sale"
)

// User represents a back-office user account. Password stays empty until the
// user completes the invite flow and sets one.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FullName    string     `gorm:"column:fullname;not null;size:255" json:"fullname"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string     `gorm:"size:255" json:"-"`
	Role        Role       `gorm:"not null;size:8" json:"role"`
	IsStaff     bool       `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"default:false" json:"is_superuser"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account has completed password setup.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// NormalizeEmail lowercases an email address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
