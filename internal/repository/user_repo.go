package repository

import (
	"context"

	"github.com/kim-DL/onnuri-inven/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityRepository manages credential records. It is intentionally a
// separate store from ProfileRepository: creating a user writes both, one
// after the other, with a compensating delete when the second write fails.
type IdentityRepository interface {
	Create(ctx context.Context, ident *model.AuthIdentity) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByEmail(ctx context.Context, email string) (*model.AuthIdentity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuthIdentity, error)
}

// ProfileRepository manages the authorization profiles keyed by identity id.
type ProfileRepository interface {
	Upsert(ctx context.Context, p *model.UserProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	List(ctx context.Context) ([]model.UserProfile, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	SetDisplayName(ctx context.Context, userID uuid.UUID, name string) error
}

type identityRepo struct{ db *gorm.DB }

func NewIdentityRepository(db *gorm.DB) IdentityRepository { return &identityRepo{db: db} }

func (r *identityRepo) Create(ctx context.Context, ident *model.AuthIdentity) error {
	return r.db.WithContext(ctx).Create(ident).Error
}

func (r *identityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AuthIdentity{}, "id = ?", id).Error
}

func (r *identityRepo) FindByEmail(ctx context.Context, email string) (*model.AuthIdentity, error) {
	var ident model.AuthIdentity
	err := r.db.WithContext(ctx).First(&ident, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *identityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthIdentity, error) {
	var ident model.AuthIdentity
	err := r.db.WithContext(ctx).First(&ident, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) Upsert(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) List(ctx context.Context) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("active", active).Error
}

func (r *profileRepo) SetDisplayName(ctx context.Context, userID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("display_name", name).Error
}
