package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory holds the current stock count for one product (one-to-one).
// Created alongside the product with Stock=0; only ever mutated through
// InventoryService.AdjustStock, which keeps Stock ≥ 0.
type Inventory struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock     int       `gorm:"not null;default:0;check:stock >= 0"`
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName keeps the singular collective noun the schema uses.
func (Inventory) TableName() string { return "inventory" }
