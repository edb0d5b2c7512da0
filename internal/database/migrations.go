package database

import (
	"fmt"
	"log"

	"pricing-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunMigrations runs schema migrations and seeds required data
func RunMigrations(db *gorm.DB) error {
	log.Println("Starting database migrations...")

	// Run GORM AutoMigrate for model schema (one by one for better error handling)
	log.Println("  → Running schema migrations...")
	modelsToMigrate := []struct {
		name  string
		model interface{}
	}{
		{"ShippingZone", &models.ShippingZone{}},
		{"ShippingLocation", &models.ShippingLocation{}},
		{"ShippingMethod", &models.ShippingMethod{}},
		{"TaxRate", &models.TaxRate{}},
		{"Currency", &models.Currency{}},
	}
	for _, m := range modelsToMigrate {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("failed to auto-migrate %s: %w", m.name, err)
		}
		log.Printf("    ✓ %s migrated", m.name)
	}
	log.Println("  ✓ Schema migrations complete")

	// Seed the base currency so conversion works out of the box
	log.Println("  → Seeding currencies...")
	if err := SeedCurrencies(db); err != nil {
		return fmt.Errorf("failed to seed currencies: %w", err)
	}
	log.Println("  ✓ Currency seed complete")

	log.Println("✓ All database migrations complete")
	return nil
}

// SeedCurrencies seeds the default currency set. This is idempotent - it
// uses upsert on the currency code to avoid duplicates, and never touches
// rows an admin has already edited.
func SeedCurrencies(db *gorm.DB) error {
	currencies := []models.Currency{
		{
			Code:           "VND",
			Name:           "Vietnamese Dong",
			Symbol:         "₫",
			SymbolPosition: models.SymbolAfter,
			ExchangeRate:   1,
			DecimalPlaces:  0,
			ThousandSep:    ".",
			DecimalSep:     ",",
			IsBase:         true,
			IsActive:       true,
			Position:       0,
		},
		{
			Code:           "USD",
			Name:           "US Dollar",
			Symbol:         "$",
			SymbolPosition: models.SymbolBefore,
			ExchangeRate:   25000,
			DecimalPlaces:  2,
			ThousandSep:    ",",
			DecimalSep:     ".",
			IsBase:         false,
			IsActive:       true,
			Position:       1,
		},
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&currencies).Error
}
