// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/user"
)

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var stockErr *billing.InsufficientStockError
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, catalog.ErrGroupNotFound),
		errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, billing.ErrClientNotFound),
		errors.Is(err, billing.ErrInvoiceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, catalog.ErrGroupNameTaken),
		errors.Is(err, billing.ErrClientNameTaken):
		status = http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, user.ErrPasswordAlreadySet),
		errors.Is(err, user.ErrPasswordMismatch),
		errors.Is(err, catalog.ErrGroupCycle),
		errors.Is(err, catalog.ErrEmptyImport),
		errors.Is(err, catalog.ErrBadImportRow),
		errors.Is(err, billing.ErrNoInvoiceItems),
		errors.As(err, &stockErr):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondBindingError reports request validation failures
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// queryPage parses the page query parameter, defaulting to the first page
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// queryUint parses an optional uint query parameter
func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	parsed := uint(v)
	return &parsed
}
