package repository

import (
	"context"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository is the data access contract for the stock ledger.
// The *Tx methods must be called inside an open transaction; locking the
// inventory row there is what serializes concurrent adjustments per product.
type InventoryRepository interface {
	CreateTx(tx *gorm.DB, inv *model.Inventory) error
	FindByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	// LockForUpdateTx reads the inventory row with SELECT … FOR UPDATE.
	LockForUpdateTx(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error)
	UpdateStockTx(tx *gorm.DB, productID uuid.UUID, stock int) error
	AppendLogTx(tx *gorm.DB, entry *model.InventoryLog) error
	// StockMap returns current stock for the given products in one query;
	// products without an inventory row are simply absent from the map.
	StockMap(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
	RecentLogs(ctx context.Context, limit int) ([]model.InventoryLog, error)
	LogsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryLog, error)

	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) CreateTx(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Create(inv).Error
}

func (r *inventoryRepo) FindByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) LockForUpdateTx(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) UpdateStockTx(tx *gorm.DB, productID uuid.UUID, stock int) error {
	return tx.Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("stock", stock).Error
}

func (r *inventoryRepo) AppendLogTx(tx *gorm.DB, entry *model.InventoryLog) error {
	return tx.Create(entry).Error
}

func (r *inventoryRepo) StockMap(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}
	var rows []model.Inventory
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	stocks := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		stocks[row.ProductID] = row.Stock
	}
	return stocks, nil
}

func (r *inventoryRepo) RecentLogs(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *inventoryRepo) LogsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
