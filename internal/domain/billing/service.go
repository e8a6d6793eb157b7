// internal/domain/billing/service.go
package billing

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/pkg/pagination"
	"github.com/your-org/inventory-backend/internal/pkg/search"
)

var (
	// ErrClientNotFound is returned when a client does not exist
	ErrClientNotFound = errors.New("client not found")
	// ErrClientNameTaken is returned when a client name is already in use
	ErrClientNameTaken = errors.New("client name already in use")
	// ErrInvoiceNotFound is returned when an invoice does not exist
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrNoInvoiceItems is returned when an invoice is submitted without lines
	ErrNoInvoiceItems = errors.New("invoice requires at least one item")
)

// InsufficientStockError reports a line that asked for more units than the
// stock item has left
type InsufficientStockError struct {
	ItemCode string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("item with code %s does not have enough quantity", e.ItemCode)
}

// Service handles client and invoice business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	recorder *activity.Recorder
}

// NewService creates a new billing service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		recorder: activity.NewRecorder(db),
	}
}

// CLIENT MANAGEMENT

// ClientRequest represents client creation and update data
type ClientRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ClientListRequest represents client listing filters
type ClientListRequest struct {
	Page    int
	Keyword string
}

// ClientListResponse represents a paginated client listing
type ClientListResponse struct {
	Clients    []Client              `json:"clients"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateClient creates a new client
func (s *Service) CreateClient(actor activity.Actor, req *ClientRequest) (*Client, error) {
	var existing Client
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrClientNameTaken
	}

	client := &Client{
		Name:        req.Name,
		CreatedByID: &actor.ID,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("added new client - '%s'", client.Name))

	return client, nil
}

// GetClient retrieves a client by ID
func (s *Service) GetClient(id uint) (*Client, error) {
	var client Client
	err := s.db.Preload("CreatedBy").First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// UpdateClient renames a client, recording old and new names
func (s *Service) UpdateClient(actor activity.Actor, id uint, req *ClientRequest) (*Client, error) {
	var client Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if req.Name != client.Name {
		var existing Client
		if err := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing).Error; err == nil {
			return nil, ErrClientNameTaken
		}
	}

	oldName := client.Name
	client.Name = req.Name
	if err := s.db.Save(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	if oldName != client.Name {
		s.recorder.Record(actor, fmt.Sprintf("updated client from - '%s' to '%s'", oldName, client.Name))
	} else {
		s.recorder.Record(actor, fmt.Sprintf("updated client - '%s'", client.Name))
	}

	return &client, nil
}

// DeleteClient deletes a client. Their invoices survive with the client
// reference cleared.
func (s *Service) DeleteClient(actor activity.Actor, id uint) error {
	var client Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Invoice{}).Where("client_id = ?", id).
			Update("client_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Client{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("deleted client - %s", client.Name))

	return nil
}

// ListClients retrieves clients with pagination and keyword search
func (s *Service) ListClients(req *ClientListRequest) (*ClientListResponse, error) {
	page := pagination.Normalize(req.Page)

	query := s.db.Model(&Client{}).
		Joins("LEFT JOIN users ON users.id = clients.created_by_id")
	query = search.Apply(query, req.Keyword,
		"clients.name", "users.fullname", "users.email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	var clients []Client
	err := query.Preload("CreatedBy").
		Order("clients.created_at DESC").
		Offset(pagination.Offset(page)).Limit(pagination.DefaultPageSize).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &ClientListResponse{
		Clients:    clients,
		Pagination: pagination.Build(page, total),
	}, nil
}

// INVOICE MANAGEMENT

// InvoiceItemRequest represents one requested invoice line
type InvoiceItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity uint `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceRequest represents invoice creation data
type CreateInvoiceRequest struct {
	ClientID *uint                `json:"client_id"`
	Items    []InvoiceItemRequest `json:"items" binding:"required,dive"`
}

// InvoiceListRequest represents invoice listing filters
type InvoiceListRequest struct {
	Page     int
	Keyword  string
	ClientID *uint
}

// InvoiceListResponse represents a paginated invoice listing
type InvoiceListResponse struct {
	Invoices   []Invoice             `json:"invoices"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateInvoice creates an invoice and its lines in one transaction. Each
// line decrements the stock item's remaining count with a guarded update, so
// two concurrent invoices can never oversell the same item. Any failing line
// rolls back the whole invoice.
func (s *Service) CreateInvoice(actor activity.Actor, req *CreateInvoiceRequest) (*Invoice, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoInvoiceItems
	}

	if req.ClientID != nil {
		var client Client
		if err := s.db.Select("id").First(&client, *req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClientNotFound
			}
			return nil, fmt.Errorf("failed to get client: %w", err)
		}
	}

	invoice := &Invoice{
		ClientID:    req.ClientID,
		CreatedByID: &actor.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for _, line := range req.Items {
			var item catalog.Inventory
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return catalog.ErrItemNotFound
				}
				return fmt.Errorf("failed to get inventory item: %w", err)
			}

			// Guarded decrement: only succeeds while enough stock remains.
			res := tx.Model(&catalog.Inventory{}).
				Where("id = ? AND remaining >= ?", item.ID, line.Quantity).
				UpdateColumn("remaining", gorm.Expr("remaining - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{ItemCode: item.Code}
			}

			itemID := item.ID
			invoiceItem := &InvoiceItem{
				InvoiceID: invoice.ID,
				ItemID:    &itemID,
				ItemName:  item.Name,
				ItemCode:  item.Code,
				Quantity:  line.Quantity,
				Amount:    float64(line.Quantity) * item.Price,
			}
			if err := tx.Create(invoiceItem).Error; err != nil {
				return fmt.Errorf("failed to create invoice item: %w", err)
			}
			invoice.Items = append(invoice.Items, *invoiceItem)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(actor, fmt.Sprintf("added new invoice - '%d'", invoice.ID))

	return invoice, nil
}

// GetInvoice retrieves an invoice with its lines
func (s *Service) GetInvoice(id uint) (*Invoice, error) {
	var invoice Invoice
	err := s.db.Preload("Client").Preload("CreatedBy").Preload("Items").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// DeleteInvoice deletes an invoice and its lines. Sold stock is not restored.
func (s *Service) DeleteInvoice(actor activity.Actor, id uint) error {
	var invoice Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Invoice{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("deleted invoice - '%d'", invoice.ID))

	return nil
}

// ListInvoices retrieves invoices with pagination, keyword search and an
// optional client filter
func (s *Service) ListInvoices(req *InvoiceListRequest) (*InvoiceListResponse, error) {
	page := pagination.Normalize(req.Page)

	query := s.db.Model(&Invoice{}).
		Joins("LEFT JOIN users ON users.id = invoices.created_by_id").
		Joins("LEFT JOIN clients ON clients.id = invoices.client_id")
	if req.ClientID != nil {
		query = query.Where("invoices.client_id = ?", *req.ClientID)
	}
	query = search.Apply(query, req.Keyword,
		"clients.name", "users.fullname", "users.email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	var invoices []Invoice
	err := query.Preload("Client").Preload("CreatedBy").Preload("Items").
		Order("invoices.created_at DESC").
		Offset(pagination.Offset(page)).Limit(pagination.DefaultPageSize).
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &InvoiceListResponse{
		Invoices:   invoices,
		Pagination: pagination.Build(page, total),
	}, nil
}
