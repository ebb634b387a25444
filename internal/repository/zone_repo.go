package repository

import (
	"context"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"gorm.io/gorm"
)

// ZoneRepository reads the zone reference data.
type ZoneRepository interface {
	List(ctx context.Context) ([]model.Zone, error)
}

type zoneRepo struct{ db *gorm.DB }

func NewZoneRepository(db *gorm.DB) ZoneRepository { return &zoneRepo{db: db} }

func (r *zoneRepo) List(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("sort_order ASC").
		Find(&zones).Error
	return zones, err
}
