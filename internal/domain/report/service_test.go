// internal/domain/report/service_test.go
package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: 24 * time.Hour,
		},
	}
}

type fixture struct {
	report  *Service
	billing *billing.Service
	catalog *catalog.Service
	db      *gorm.DB
}

func setup(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &activity.UserActivity{},
		&catalog.InventoryGroup{}, &catalog.Inventory{},
		&billing.Client{}, &billing.Invoice{}, &billing.InvoiceItem{},
	))
	cfg := testConfig()
	return &fixture{
		report:  NewService(db, cfg),
		billing: billing.NewService(db, cfg),
		catalog: catalog.NewService(db, cfg),
		db:      db,
	}
}

func actor() activity.Actor {
	return activity.Actor{ID: 1, Email: "admin@example.com", FullName: "Admin"}
}

func (f *fixture) seedItem(t *testing.T, name string, total uint, price float64) *catalog.Inventory {
	t.Helper()
	item, err := f.catalog.CreateInventory(actor(), &catalog.CreateInventoryRequest{
		Name: name, Total: total, Price: price,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) sell(t *testing.T, clientID *uint, itemID, qty uint) {
	t.Helper()
	_, err := f.billing.CreateInvoice(actor(), &billing.CreateInvoiceRequest{
		ClientID: clientID,
		Items:    []billing.InvoiceItemRequest{{ItemID: itemID, Quantity: qty}},
	})
	require.NoError(t, err)
}

func TestSummaryCounts(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Create(&user.User{
		Email: "a@example.com", FullName: "A", Role: user.RoleAdmin,
	}).Error)
	require.NoError(t, f.db.Create(&user.User{
		Email: "root@example.com", FullName: "Root", Role: user.RoleAdmin, IsSuperuser: true,
	}).Error)

	_, err := f.catalog.CreateGroup(actor(), &catalog.CreateGroupRequest{Name: "Things"})
	require.NoError(t, err)
	_, err = f.billing.CreateClient(actor(), &billing.ClientRequest{Name: "Acme"})
	require.NoError(t, err)

	inStock := f.seedItem(t, "Widget", 2, 10)
	soldOut := f.seedItem(t, "Gadget", 1, 10)
	f.sell(t, nil, soldOut.ID, 1)
	_ = inStock

	summary, err := f.report.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalInventory) // sold-out item excluded
	assert.Equal(t, int64(1), summary.TotalGroups)
	assert.Equal(t, int64(1), summary.TotalClients)
	assert.Equal(t, int64(1), summary.TotalUsers) // superuser excluded
}

func TestTopSellingRanksByQuantity(t *testing.T) {
	f := setup(t)

	slow := f.seedItem(t, "Slow", 50, 100)
	fast := f.seedItem(t, "Fast", 50, 1)
	f.sell(t, nil, slow.ID, 2)
	f.sell(t, nil, fast.ID, 9)
	f.sell(t, nil, fast.ID, 3)

	items, err := f.report.GetTopSelling(&TopSellingRequest{Total: true})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fast", items[0].ItemName)
	assert.Equal(t, uint(12), items[0].QuantitySold)
	assert.Equal(t, 12.0, items[0].AmountSold)
	assert.Equal(t, "Slow", items[1].ItemName)
	assert.Equal(t, uint(2), items[1].QuantitySold)
}

func TestTopSellingLimitsToTen(t *testing.T) {
	f := setup(t)

	for i := 0; i < 12; i++ {
		item := f.seedItem(t, "Item", 20, 1)
		f.sell(t, nil, item.ID, uint(i+1))
	}

	items, err := f.report.GetTopSelling(&TopSellingRequest{Total: true})
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, uint(12), items[0].QuantitySold)
}

func TestTopSellingDateRange(t *testing.T) {
	f := setup(t)

	item := f.seedItem(t, "Widget", 10, 5)
	f.sell(t, nil, item.ID, 4)

	future := DateRange{Start: time.Now().Add(24 * time.Hour)}
	items, err := f.report.GetTopSelling(&TopSellingRequest{Range: future})
	require.NoError(t, err)
	assert.Empty(t, items)

	// total=true ignores the range
	items, err = f.report.GetTopSelling(&TopSellingRequest{Total: true, Range: future})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSalesByClient(t *testing.T) {
	f := setup(t)

	acme, err := f.billing.CreateClient(actor(), &billing.ClientRequest{Name: "Acme"})
	require.NoError(t, err)
	globex, err := f.billing.CreateClient(actor(), &billing.ClientRequest{Name: "Globex"})
	require.NoError(t, err)
	item := f.seedItem(t, "Widget", 100, 10)

	f.sell(t, &acme.ID, item.ID, 1)  // 10
	f.sell(t, &globex.ID, item.ID, 5) // 50
	f.sell(t, &globex.ID, item.ID, 2) // 20

	resp, err := f.report.GetSalesByClient(&SalesByClientRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 2)
	assert.Equal(t, "Globex", resp.Sales[0].ClientName)
	assert.Equal(t, 70.0, resp.Sales[0].Amount)
	assert.Equal(t, "Acme", resp.Sales[1].ClientName)
	assert.Equal(t, 10.0, resp.Sales[1].Amount)
}

func TestSalesByClientDateRange(t *testing.T) {
	f := setup(t)

	acme, err := f.billing.CreateClient(actor(), &billing.ClientRequest{Name: "Acme"})
	require.NoError(t, err)
	item := f.seedItem(t, "Widget", 100, 10)
	f.sell(t, &acme.ID, item.ID, 2)

	future := DateRange{Start: time.Now().Add(24 * time.Hour)}
	resp, err := f.report.GetSalesByClient(&SalesByClientRequest{Range: future})
	require.NoError(t, err)
	assert.Empty(t, resp.Sales)

	// total=true ignores the range
	resp, err = f.report.GetSalesByClient(&SalesByClientRequest{Total: true, Range: future})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 1)
	assert.Equal(t, 20.0, resp.Sales[0].Amount)
}

func TestSalesByClientMonthly(t *testing.T) {
	f := setup(t)

	acme, err := f.billing.CreateClient(actor(), &billing.ClientRequest{Name: "Acme"})
	require.NoError(t, err)
	item := f.seedItem(t, "Widget", 100, 10)
	f.sell(t, &acme.ID, item.ID, 3)

	resp, err := f.report.GetSalesByClient(&SalesByClientRequest{Monthly: true})
	require.NoError(t, err)
	require.Len(t, resp.Monthly, 1)
	assert.Equal(t, time.Now().Format("2006-01"), resp.Monthly[0].Month)
	assert.Equal(t, 30.0, resp.Monthly[0].Amount)
	assert.Equal(t, "Acme", resp.Monthly[0].ClientName)
}

func TestPurchaseSummaryZeroDefaults(t *testing.T) {
	f := setup(t)

	summary, err := f.report.GetPurchaseSummary(&PurchaseSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Amount)
	assert.Equal(t, uint(0), summary.Quantity)
}

func TestPurchaseSummaryTotals(t *testing.T) {
	f := setup(t)

	item := f.seedItem(t, "Widget", 100, 2.5)
	f.sell(t, nil, item.ID, 4) // 10.00
	f.sell(t, nil, item.ID, 2) // 5.00

	summary, err := f.report.GetPurchaseSummary(&PurchaseSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "15.00", summary.Amount)
	assert.Equal(t, uint(6), summary.Quantity)
}

func TestPurchaseSummaryDateRange(t *testing.T) {
	f := setup(t)

	item := f.seedItem(t, "Widget", 100, 5)
	f.sell(t, nil, item.ID, 2) // 10.00

	future := DateRange{Start: time.Now().Add(24 * time.Hour)}
	summary, err := f.report.GetPurchaseSummary(&PurchaseSummaryRequest{Range: future})
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Amount)
	assert.Equal(t, uint(0), summary.Quantity)

	// total=true ignores the range
	summary, err = f.report.GetPurchaseSummary(&PurchaseSummaryRequest{Total: true, Range: future})
	require.NoError(t, err)
	assert.Equal(t, "10.00", summary.Amount)
	assert.Equal(t, uint(2), summary.Quantity)
}
