// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/pkg/auth"
	"github.com/your-org/inventory-backend/internal/pkg/pagination"
	"github.com/your-org/inventory-backend/internal/pkg/search"
	"gorm.io/gorm"
)

// Sentinel errors for the identity flows
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordAlreadySet = errors.New("user has password already")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	recorder        *activity.Recorder
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		recorder:        activity.NewRecorder(db),
	}
}

// CreateUserRequest represents user creation data (invite flow, no password)
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullname" binding:"required"`
	Role     Role   `json:"role" binding:"required,oneof=admin creator sale"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	IsNewUser bool   `json:"is_new_user"`
}

// UpdatePasswordRequest represents the password initialization data
type UpdatePasswordRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	Access    string `json:"access"`
	ExpiresIn int64  `json:"expires_in"`
}

// NewUserResponse identifies an account that still needs a password
type NewUserResponse struct {
	UserID uint `json:"user_id"`
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page    int    `form:"page,default=1"`
	Keyword string `form:"keyword"`
	Role    Role   `form:"role"`
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Users      []User                `json:"users"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateUser creates a user account without a password; the user sets one on
// first login.
func (s *Service) CreateUser(actor activity.Actor, req *CreateUserRequest) (*User, error) {
	email := NormalizeEmail(req.Email)

	var existing User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	newUser := User{
		Email:    email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recorder.Record(actor, "added new user")

	return &newUser, nil
}

// Login authenticates a user. With IsNewUser set it instead resolves an
// invited account that has no password yet, returning the user id for
// password initialization.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, *NewUserResponse, error) {
	email := NormalizeEmail(req.Email)

	if req.IsNewUser {
		var pending User
		if err := s.db.Where("email = ?", email).First(&pending).Error; err != nil {
			return nil, nil, ErrNotFound
		}
		if pending.HasPassword() {
			return nil, nil, ErrPasswordAlreadySet
		}
		return nil, &NewUserResponse{UserID: pending.ID}, nil
	}

	var account User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&account).Error; err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !account.HasPassword() {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	access, err := s.jwtManager.GenerateAccessToken(
		account.ID, account.Email, account.FullName, string(account.Role), account.IsSuperuser)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now().UTC()
	account.LastLoginAt = &now
	if err := s.db.Model(&account).Update("last_login_at", now).Error; err != nil {
		// Best effort: a stale login stamp must not block the login itself.
		logrus.WithError(err).WithField("user_id", account.ID).
			Warn("Failed to record last login time")
	}

	s.recorder.Record(activity.Actor{ID: account.ID, Email: account.Email, FullName: account.FullName}, "logged in")

	return &AuthResponse{
		Access:    access,
		ExpiresIn: int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil, nil
}

// UpdatePassword sets the password for an invited account.
func (s *Service) UpdatePassword(req *UpdatePasswordRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	var account User
	if err := s.db.Where("id = ?", req.UserID).First(&account).Error; err != nil {
		return ErrNotFound
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(&account).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.recorder.Record(activity.Actor{ID: account.ID, Email: account.Email, FullName: account.FullName}, "updated password")

	return nil
}

// GetProfile gets a user by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var account User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&account).Error; err != nil {
		return nil, ErrNotFound
	}
	return &account, nil
}

// ListUsers retrieves users with filtering and pagination. Superusers are
// excluded from listings.
func (s *Service) ListUsers(req *UserListRequest) (*UserListResponse, error) {
	var users []User
	var total int64

	page := pagination.Normalize(req.Page)
	query := s.db.Model(&User{}).Where("is_superuser = ?", false)

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	if req.Keyword != "" {
		query = search.Apply(query, req.Keyword, "fullname", "email", "role")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	err := query.
		Order("created_at ASC").
		Offset(pagination.Offset(page)).
		Limit(pagination.DefaultPageSize).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	return &UserListResponse{
		Users:      users,
		Pagination: pagination.Build(page, total),
	}, nil
}
