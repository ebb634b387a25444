package repository

import (
	"context"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository persists the process-wide settings rows.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Upsert(ctx context.Context, key string, value int) error
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository { return &settingRepo{db: db} }

func (r *settingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingRepo) Upsert(ctx context.Context, key string, value int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}
