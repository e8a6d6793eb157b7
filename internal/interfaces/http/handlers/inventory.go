// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// InventoryHandler handles inventory item endpoints
type InventoryHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// Create handles POST /app/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req catalog.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	item, err := h.catalogService.CreateInventory(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inventory item created successfully",
		"data":    item,
	})
}

// Get handles GET /app/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.catalogService.GetInventory(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// Update handles PUT /app/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req catalog.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	item, err := h.catalogService.UpdateInventory(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item updated successfully",
		"data":    item,
	})
}

// Delete handles DELETE /app/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteInventory(actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item deleted successfully",
	})
}

// List handles GET /app/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	resp, err := h.catalogService.ListInventories(&catalog.InventoryListRequest{
		Page:    queryPage(c),
		Keyword: c.Query("keyword"),
		GroupID: queryUint(c, "group_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ImportCSV handles POST /app/inventory-csv. Items arrive as a multipart
// file field named "data".
func (h *InventoryHandler) ImportCSV(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fileHeader, err := c.FormFile("data")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file field 'data' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.catalogService.ImportInventoriesCSV(actor, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inventory items imported successfully",
		"data":    result,
	})
}
