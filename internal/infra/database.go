package infra

import (
	"fmt"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey so services can
		// map them to their own conflict codes.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration
// tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13 setups.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Zone{},
		&model.Product{},
		&model.Inventory{},
		&model.InventoryLog{},
		&model.AuthIdentity{},
		&model.UserProfile{},
		&model.Setting{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The stock check constraint is the database-level backstop for the
		// non-negativity rule; the service enforces it first under a row lock.
		{"inventory stock non-negative check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_inventory_stock_nonneg') THEN
    ALTER TABLE inventory ADD CONSTRAINT chk_inventory_stock_nonneg CHECK (stock >= 0);
  END IF;
END $$`},
		// Partial index for the archived listing.
		{"archived products index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_archived') THEN
    CREATE INDEX idx_products_archived ON products (archived_at) WHERE active = false;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// SeedZones inserts the fixed warehouse zones when they are missing. Safe to
// run on every startup.
func SeedZones(db *gorm.DB) error {
	zones := []model.Zone{
		{Name: "냉동1", SortOrder: 1, Active: true},
		{Name: "냉동2", SortOrder: 2, Active: true},
		{Name: "냉장", SortOrder: 3, Active: true},
		{Name: "상온", SortOrder: 4, Active: true},
	}
	for i := range zones {
		z := zones[i]
		if err := db.Where("name = ?", z.Name).FirstOrCreate(&z).Error; err != nil {
			return fmt.Errorf("seed zone %s: %w", z.Name, err)
		}
	}
	return nil
}
