// internal/domain/billing/entity.go
package billing

import (
	"time"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/user"
)

// Client is a customer invoices are issued to
type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CreatedBy *user.User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName overrides the table name for Client
func (Client) TableName() string {
	return "clients"
}

// Invoice is a sale header. Lines carry the amounts; the header only ties
// them to a client and a seller.
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    *uint     `gorm:"index" json:"client_id"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Client    *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CreatedBy *user.User    `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName overrides the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one sold line. ItemName, ItemCode and Amount are snapshots
// taken at sale time; later edits or deletion of the stock item do not touch
// them.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InvoiceID uint      `gorm:"index;not null" json:"invoice_id"`
	ItemID    *uint     `gorm:"index" json:"item_id"`
	ItemName  string    `gorm:"not null;size:255" json:"item_name"`
	ItemCode  string    `gorm:"size:10" json:"item_code"`
	Quantity  uint      `gorm:"not null" json:"quantity"`
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`

	Item *catalog.Inventory `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides the table name for InvoiceItem
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Total sums the line amounts of an invoice
func (i *Invoice) Total() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Amount
	}
	return total
}
