// internal/interfaces/http/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// UserHandler handles account and activity endpoints
type UserHandler struct {
	userService *user.Service
	recorder    *activity.Recorder
	config      *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: user.NewService(db, cfg),
		recorder:    activity.NewRecorder(db),
		config:      cfg,
	}
}

// CreateUser handles POST /user/create-user
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	created, err := h.userService.CreateUser(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    created,
	})
}

// Login handles POST /user/login. With is_new_user set, it probes whether the
// account still needs its first password and answers with the user id.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	auth, newUser, err := h.userService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	if newUser != nil {
		c.JSON(http.StatusOK, newUser)
		return
	}
	c.JSON(http.StatusOK, auth)
}

// UpdatePassword handles POST /user/update-password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req user.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.userService.UpdatePassword(&req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

// Me handles GET /user/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// ListUsers handles GET /user/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.userService.ListUsers(&user.UserListRequest{
		Page:    queryPage(c),
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListActivities handles GET /user/activities
func (h *UserHandler) ListActivities(c *gin.Context) {
	var req activity.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.recorder.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
