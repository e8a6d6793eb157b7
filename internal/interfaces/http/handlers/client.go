// internal/interfaces/http/handlers/client.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	billingService *billing.Service
	config         *config.Config
}

// NewClientHandler creates a new client handler
func NewClientHandler(db *gorm.DB, cfg *config.Config) *ClientHandler {
	return &ClientHandler{
		billingService: billing.NewService(db, cfg),
		config:         cfg,
	}
}

// Create handles POST /app/client
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req billing.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, err := h.billingService.CreateClient(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"data":    client,
	})
}

// Get handles GET /app/client/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.billingService.GetClient(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": client})
}

// Update handles PUT /app/client/:id
func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req billing.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, err := h.billingService.UpdateClient(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"data":    client,
	})
}

// Delete handles DELETE /app/client/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.billingService.DeleteClient(actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted successfully",
	})
}

// List handles GET /app/client
func (h *ClientHandler) List(c *gin.Context) {
	resp, err := h.billingService.ListClients(&billing.ClientListRequest{
		Page:    queryPage(c),
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
