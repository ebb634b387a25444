package repository

import (
	"context"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// List returns products filtered by active flag and optional zone,
	// ordered by name. Token search happens in the service layer because it
	// matches across joined fields.
	List(ctx context.Context, active bool, zoneID *uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Archive(ctx context.Context, id uuid.UUID, reason string) error
	Restore(ctx context.Context, id uuid.UUID) error
	// HardDeleteTx removes the product and its ledger inside the caller's
	// transaction: logs first, then the inventory row, then the product.
	HardDeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountActive(ctx context.Context) (int64, error)
	CountActiveByZone(ctx context.Context) (map[uuid.UUID]int64, int64, error)
	ListExpiring(ctx context.Context) ([]model.Product, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Zone").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, active bool, zoneID *uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Preload("Zone").Where("active = ?", active)
	if zoneID != nil {
		q = q.Where("zone_id = ?", *zoneID)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Archive(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":         false,
			"archive_reason": reason,
			"archived_at":    gorm.Expr("now()"),
		}).Error
}

func (r *productRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":         true,
			"archive_reason": nil,
			"archived_at":    nil,
		}).Error
}

func (r *productRepo) HardDeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("product_id = ?", id).Delete(&model.InventoryLog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&model.Inventory{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = true").Count(&total).Error
	return total, err
}

func (r *productRepo) CountActiveByZone(ctx context.Context) (map[uuid.UUID]int64, int64, error) {
	type zoneCount struct {
		ZoneID *uuid.UUID
		N      int64
	}
	var rows []zoneCount
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("zone_id, count(*) as n").
		Where("active = true").
		Group("zone_id").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	var unzoned int64
	for _, row := range rows {
		if row.ZoneID == nil {
			unzoned = row.N
			continue
		}
		counts[*row.ZoneID] = row.N
	}
	return counts, unzoned, nil
}

func (r *productRepo) ListExpiring(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = true AND expiry_date IS NOT NULL").
		Order("expiry_date ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
