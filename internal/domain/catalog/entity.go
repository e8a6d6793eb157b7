// internal/domain/catalog/entity.go
package catalog

import (
	"fmt"
	"time"

	"github.com/your-org/inventory-backend/internal/domain/user"
)

// InventoryGroup organizes stock items into a tree of named groups. Names are
// unique across the whole forest, not per parent.
type InventoryGroup struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null;size:100" json:"name"`
	BelongsToID *uint      `gorm:"index" json:"belongs_to_id"`
	CreatedByID *uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	BelongsTo *InventoryGroup `gorm:"foreignKey:BelongsToID" json:"belongs_to,omitempty"`
	CreatedBy *user.User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName overrides the table name for InventoryGroup
func (InventoryGroup) TableName() string {
	return "inventory_groups"
}

// Inventory is a stock-keeping unit. Total is fixed at creation; Remaining
// starts equal to Total and only decreases as invoice items are sold against
// it.
type Inventory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:10" json:"code"`
	Photo       string    `gorm:"type:text" json:"photo"`
	GroupID     *uint     `gorm:"index" json:"group_id"`
	Total       uint      `gorm:"not null" json:"total"`
	Remaining   uint      `gorm:"not null" json:"remaining"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Price       float64   `gorm:"default:0" json:"price"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Group     *InventoryGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	CreatedBy *user.User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName overrides the table name for Inventory
func (Inventory) TableName() string {
	return "inventories"
}

// DisplayCode derives the human-readable code from an assigned identity:
// the id zero-padded to six digits. Identities with seven or more digits
// keep their natural width.
func DisplayCode(id uint) string {
	return fmt.Sprintf("%06d", id)
}
