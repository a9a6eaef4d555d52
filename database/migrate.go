package database

import (
	"fmt"

	"github.com/jlvilasoler/hashrate/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Helpful indexes for the invoice listing paths
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.User{},
		&models.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_invoices_month ON invoices (month)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
		}
	}

	return nil
}
