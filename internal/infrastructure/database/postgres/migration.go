// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},
		&activity.UserActivity{},

		&catalog.InventoryGroup{},
		&catalog.Inventory{},

		&billing.Client{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)",

		"CREATE INDEX IF NOT EXISTS idx_user_activities_created_at ON user_activities(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_user_activities_user_created ON user_activities(user_id, created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_inventories_group_remaining ON inventories(group_id, remaining)",
		"CREATE INDEX IF NOT EXISTS idx_inventories_created_at ON inventories(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_invoices_client_created ON invoices(client_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)",
		"CREATE INDEX IF NOT EXISTS idx_invoice_items_item_created ON invoice_items(item_id, created_at)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("Database indexes created")
	return nil
}

// SeedInitialData seeds the bootstrap superuser for development environments
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Initial data seeded")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	if err := m.db.Where("email = ?", "admin@example.com").First(&existing).Error; err == nil {
		log.Printf("Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.User{
		Email:       "admin@example.com",
		Password:    string(hashedPassword),
		FullName:    "Administrator",
		Role:        user.RoleAdmin,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("Created admin user: admin@example.com (password: admin123)")
	return nil
}

// GetTableInfo logs row counts per table, used during development startup
func (m *Migration) GetTableInfo() {
	tables := []string{
		"users", "user_activities", "inventory_groups", "inventories",
		"clients", "invoices", "invoice_items",
	}

	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("Table %s: error counting rows: %v", table, err)
			continue
		}
		log.Printf("Table %s: %d rows", table, count)
	}
}
