// internal/interfaces/http/handlers/group.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// GroupHandler handles inventory group endpoints
type GroupHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(db *gorm.DB, cfg *config.Config) *GroupHandler {
	return &GroupHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// Create handles POST /app/group
func (h *GroupHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req catalog.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	group, err := h.catalogService.CreateGroup(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"data":    group,
	})
}

// Get handles GET /app/group/:id
func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	group, err := h.catalogService.GetGroup(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": group})
}

// Update handles PUT /app/group/:id
func (h *GroupHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req catalog.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	group, err := h.catalogService.UpdateGroup(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group updated successfully",
		"data":    group,
	})
}

// Delete handles DELETE /app/group/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteGroup(actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully",
	})
}

// List handles GET /app/group
func (h *GroupHandler) List(c *gin.Context) {
	resp, err := h.catalogService.ListGroups(&catalog.GroupListRequest{
		Page:    queryPage(c),
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
