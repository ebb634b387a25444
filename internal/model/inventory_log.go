package model

import (
	"time"

	"github.com/google/uuid"
)

// NoteAdjust marks a manual correction; without it the delta sign alone
// distinguishes stock-in from stock-out.
const NoteAdjust = "ADJUST"

// InventoryLog is one append-only ledger entry per stock adjustment.
// AfterStock = BeforeStock + Delta is enforced at write time, and the
// BeforeStock of each entry equals the AfterStock of the previous entry for
// the same product. Rows are never updated or deleted (hard-deleting the
// product removes its whole ledger with it).
type InventoryLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index:idx_inventory_logs_product_created,priority:1"`
	Delta       int       `gorm:"not null"` // positive = in, negative = out, never 0
	BeforeStock int       `gorm:"not null"`
	AfterStock  int       `gorm:"not null"`
	Note        *string
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	// ActorName snapshots the display name at write time so the ledger stays
	// readable after the user is renamed or removed.
	ActorName *string
	CreatedAt time.Time `gorm:"index:idx_inventory_logs_product_created,priority:2,sort:desc"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (InventoryLog) TableName() string { return "inventory_logs" }
