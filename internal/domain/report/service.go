// internal/domain/report/service.go
package report

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/user"
)

const topSellingLimit = 10

// Service produces read-only aggregates over the catalog and billing tables
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

// DateRange bounds a report to an inclusive window. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) apply(query *gorm.DB, column string) *gorm.DB {
	if !r.Start.IsZero() {
		query = query.Where(column+" >= ?", r.Start)
	}
	if !r.End.IsZero() {
		query = query.Where(column+" <= ?", r.End)
	}
	return query
}

// Summary holds the dashboard headline counts
type Summary struct {
	TotalInventory int64 `json:"total_inventory"`
	TotalGroups    int64 `json:"total_group"`
	TotalClients   int64 `json:"total_clients"`
	TotalUsers     int64 `json:"total_users"`
}

// GetSummary counts in-stock items, groups, clients and non-superuser users
func (s *Service) GetSummary() (*Summary, error) {
	summary := &Summary{}

	err := s.db.Model(&catalog.Inventory{}).Where("remaining > 0").
		Count(&summary.TotalInventory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}
	if err := s.db.Model(&catalog.InventoryGroup{}).Count(&summary.TotalGroups).Error; err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	if err := s.db.Model(&billing.Client{}).Count(&summary.TotalClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	err = s.db.Model(&user.User{}).Where("is_superuser = ?", false).
		Count(&summary.TotalUsers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return summary, nil
}

// TopSellingRequest bounds the top-selling report. Total=true ignores the
// date range and ranks over all time.
type TopSellingRequest struct {
	Total bool
	Range DateRange
}

// TopSellingItem is one ranked row of the top-selling report
type TopSellingItem struct {
	ItemID       *uint   `json:"item_id"`
	ItemName     string  `json:"item_name"`
	ItemCode     string  `json:"item_code"`
	QuantitySold uint    `json:"quantity_sold"`
	AmountSold   float64 `json:"amount_sold"`
}

// GetTopSelling ranks the ten best-selling items by units sold
func (s *Service) GetTopSelling(req *TopSellingRequest) ([]TopSellingItem, error) {
	query := s.db.Model(&billing.InvoiceItem{}).
		Select("item_id, item_name, item_code, SUM(quantity) AS quantity_sold, SUM(amount) AS amount_sold").
		Group("item_id, item_name, item_code").
		Order("quantity_sold DESC").
		Limit(topSellingLimit)
	if !req.Total {
		query = req.Range.apply(query, "created_at")
	}

	var items []TopSellingItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to rank top-selling items: %w", err)
	}
	return items, nil
}

// SalesByClientRequest bounds the per-client sales report. Total=true ignores
// the date range and sums over all time.
type SalesByClientRequest struct {
	Monthly bool
	Total   bool
	Range   DateRange
}

// ClientSales is total revenue attributed to one client
type ClientSales struct {
	ClientID   *uint   `json:"client_id"`
	ClientName string  `json:"client_name"`
	Amount     float64 `json:"amount"`
}

// MonthlyClientSales is one client's revenue within one calendar month
type MonthlyClientSales struct {
	Month      string  `json:"month"`
	ClientID   *uint   `json:"client_id"`
	ClientName string  `json:"client_name"`
	Amount     float64 `json:"amount"`
}

// SalesByClientResponse carries whichever grouping was requested
type SalesByClientResponse struct {
	Sales   []ClientSales        `json:"sales,omitempty"`
	Monthly []MonthlyClientSales `json:"monthly,omitempty"`
}

type clientSaleRow struct {
	ClientID   *uint
	ClientName string
	Amount     float64
	CreatedAt  time.Time
}

// GetSalesByClient sums invoice line amounts per client, optionally split by
// the calendar month of the invoice. Month bucketing runs in Go so the query
// stays portable across databases.
func (s *Service) GetSalesByClient(req *SalesByClientRequest) (*SalesByClientResponse, error) {
	query := s.db.Model(&billing.InvoiceItem{}).
		Select("invoices.client_id AS client_id, clients.name AS client_name, invoice_items.amount AS amount, invoices.created_at AS created_at").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("LEFT JOIN clients ON clients.id = invoices.client_id")
	if !req.Total {
		query = req.Range.apply(query, "invoices.created_at")
	}

	var rows []clientSaleRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load client sales: %w", err)
	}

	if req.Monthly {
		return &SalesByClientResponse{Monthly: bucketMonthly(rows)}, nil
	}
	return &SalesByClientResponse{Sales: bucketByClient(rows)}, nil
}

func bucketByClient(rows []clientSaleRow) []ClientSales {
	type key struct {
		hasClient bool
		clientID  uint
	}
	totals := make(map[key]*ClientSales)
	for _, row := range rows {
		k := key{}
		if row.ClientID != nil {
			k = key{hasClient: true, clientID: *row.ClientID}
		}
		if existing, ok := totals[k]; ok {
			existing.Amount += row.Amount
			continue
		}
		totals[k] = &ClientSales{
			ClientID:   row.ClientID,
			ClientName: row.ClientName,
			Amount:     row.Amount,
		}
	}

	sales := make([]ClientSales, 0, len(totals))
	for _, v := range totals {
		sales = append(sales, *v)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Amount > sales[j].Amount })
	return sales
}

func bucketMonthly(rows []clientSaleRow) []MonthlyClientSales {
	type key struct {
		month     string
		hasClient bool
		clientID  uint
	}
	totals := make(map[key]*MonthlyClientSales)
	for _, row := range rows {
		month := row.CreatedAt.Format("2006-01")
		k := key{month: month}
		if row.ClientID != nil {
			k = key{month: month, hasClient: true, clientID: *row.ClientID}
		}
		if existing, ok := totals[k]; ok {
			existing.Amount += row.Amount
			continue
		}
		totals[k] = &MonthlyClientSales{
			Month:      month,
			ClientID:   row.ClientID,
			ClientName: row.ClientName,
			Amount:     row.Amount,
		}
	}

	monthly := make([]MonthlyClientSales, 0, len(totals))
	for _, v := range totals {
		monthly = append(monthly, *v)
	}
	sort.Slice(monthly, func(i, j int) bool {
		if monthly[i].Month != monthly[j].Month {
			return monthly[i].Month < monthly[j].Month
		}
		return monthly[i].Amount > monthly[j].Amount
	})
	return monthly
}

// PurchaseSummary totals sold amount and units, formatted for the dashboard
type PurchaseSummary struct {
	Amount   string `json:"amount"`
	Quantity uint   `json:"quantity"`
}

// PurchaseSummaryRequest bounds the purchase summary. Total=true ignores the
// date range and sums over all time.
type PurchaseSummaryRequest struct {
	Total bool
	Range DateRange
}

// GetPurchaseSummary sums invoice line amount and quantity over an optional
// range. An empty result reports "0.00" and 0 rather than nulls.
func (s *Service) GetPurchaseSummary(req *PurchaseSummaryRequest) (*PurchaseSummary, error) {
	query := s.db.Model(&billing.InvoiceItem{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(quantity), 0) AS quantity")
	if !req.Total {
		query = req.Range.apply(query, "created_at")
	}

	var totals struct {
		Amount   float64
		Quantity uint
	}
	if err := query.Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum purchases: %w", err)
	}

	return &PurchaseSummary{
		Amount:   fmt.Sprintf("%.2f", totals.Amount),
		Quantity: totals.Quantity,
	}, nil
}
