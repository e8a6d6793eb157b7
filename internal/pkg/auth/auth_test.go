// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/inventory-backend/internal/config"
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

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "sale@example.com", "Sales Person", "sale", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sale@example.com", claims.Email)
	assert.Equal(t, "Sales Person", claims.FullName)
	assert.Equal(t, "sale", claims.Role)
	assert.False(t, claims.IsSuperuser)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateAccessTokenRejectsTampering(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(1, "a@example.com", "A", "admin", true)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token + "x")
	assert.Error(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(otherCfg).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Hour
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken(1, "a@example.com", "A", "admin", false)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

func TestPasswordHashAndVerify(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, manager.VerifyPassword("correct horse", hash))
	assert.Error(t, manager.VerifyPassword("wrong horse", hash))
}

func TestPasswordValidation(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	_, err := manager.HashPassword("short")
	assert.Error(t, err)

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	_, err = manager.HashPassword(string(long))
	assert.Error(t, err)
}
