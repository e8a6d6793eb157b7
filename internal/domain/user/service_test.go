// internal/domain/user/service_test.go
package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &activity.UserActivity{}))
	return NewService(db, testConfig()), db
}

func adminActor() activity.Actor {
	return activity.Actor{ID: 99, Email: "admin@example.com", FullName: "Admin"}
}

func TestCreateUserWithoutPassword(t *testing.T) {
	svc, db := setupService(t)

	created, err := svc.CreateUser(adminActor(), &CreateUserRequest{
		Email:    "Sale@Example.com",
		FullName: "Sales Person",
		Role:     RoleSale,
	})
	require.NoError(t, err)
	assert.Equal(t, "sale@example.com", created.Email)
	assert.False(t, created.HasPassword())

	var count int64
	db.Model(&activity.UserActivity{}).Where("action = ?", "added new user").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)

	req := &CreateUserRequest{Email: "dup@example.com", FullName: "Dup", Role: RoleCreator}
	_, err := svc.CreateUser(adminActor(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(adminActor(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestNewUserLoginFlow(t *testing.T) {
	svc, db := setupService(t)

	created, err := svc.CreateUser(adminActor(), &CreateUserRequest{
		Email:    "new@example.com",
		FullName: "New User",
		Role:     RoleSale,
	})
	require.NoError(t, err)

	// Invited account without a password resolves to its id.
	auth, pending, err := svc.Login(&LoginRequest{Email: "new@example.com", IsNewUser: true})
	require.NoError(t, err)
	assert.Nil(t, auth)
	require.NotNil(t, pending)
	assert.Equal(t, created.ID, pending.UserID)

	require.NoError(t, svc.UpdatePassword(&UpdatePasswordRequest{
		UserID:          created.ID,
		Password:        "sup3r-secret",
		ConfirmPassword: "sup3r-secret",
	}))

	// Once a password is set the new-user probe must fail.
	_, _, err = svc.Login(&LoginRequest{Email: "new@example.com", IsNewUser: true})
	assert.ErrorIs(t, err, ErrPasswordAlreadySet)

	// And a regular login succeeds and stamps the login time.
	auth, pending, err = svc.Login(&LoginRequest{Email: "new@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)
	assert.Nil(t, pending)
	require.NotNil(t, auth)
	assert.NotEmpty(t, auth.Access)

	var fresh User
	require.NoError(t, db.First(&fresh, created.ID).Error)
	require.NotNil(t, fresh.LastLoginAt)
	assert.WithinDuration(t, time.Now().UTC(), *fresh.LastLoginAt, time.Minute)
}

func TestNewUserLoginUnknownEmail(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.Login(&LoginRequest{Email: "ghost@example.com", IsNewUser: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.CreateUser(adminActor(), &CreateUserRequest{
		Email:    "kim@example.com",
		FullName: "Kim",
		Role:     RoleCreator,
	})
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePassword(&UpdatePasswordRequest{
		UserID:          created.ID,
		Password:        "sup3r-secret",
		ConfirmPassword: "sup3r-secret",
	}))

	_, _, err = svc.Login(&LoginRequest{Email: "kim@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// No password set means the account cannot log in normally.
	_, err = svc.CreateUser(adminActor(), &CreateUserRequest{
		Email:    "idle@example.com",
		FullName: "Idle",
		Role:     RoleSale,
	})
	require.NoError(t, err)
	_, _, err = svc.Login(&LoginRequest{Email: "idle@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePasswordMismatch(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.UpdatePassword(&UpdatePasswordRequest{
		UserID:          1,
		Password:        "sup3r-secret",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestListUsersExcludesSuperusers(t *testing.T) {
	svc, db := setupService(t)

	_, err := svc.CreateUser(adminActor(), &CreateUserRequest{
		Email: "a@example.com", FullName: "A", Role: RoleSale,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&User{
		Email: "root@example.com", FullName: "Root", Role: RoleAdmin, IsSuperuser: true, IsActive: true,
	}).Error)

	res, err := svc.ListUsers(&UserListRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "a@example.com", res.Users[0].Email)
}
