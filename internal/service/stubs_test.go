package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Product repository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products     map[uuid.UUID]*model.Product
	deleteTxErr  error
	hardDeleted  []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error { return r.CreateTx(nil, p) }

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, active bool, zoneID *uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active != active {
			continue
		}
		if zoneID != nil && (p.ZoneID == nil || *p.ZoneID != *zoneID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Archive(_ context.Context, id uuid.UUID, reason string) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	p.Active = false
	p.ArchiveReason = &reason
	p.ArchivedAt = &now
	return nil
}

func (r *stubProductRepo) Restore(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	p.ArchiveReason = nil
	p.ArchivedAt = nil
	return nil
}

func (r *stubProductRepo) HardDeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if r.deleteTxErr != nil {
		return r.deleteTxErr
	}
	delete(r.products, id)
	r.hardDeleted = append(r.hardDeleted, id)
	return nil
}

func (r *stubProductRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountActiveByZone(_ context.Context) (map[uuid.UUID]int64, int64, error) {
	counts := make(map[uuid.UUID]int64)
	var unzoned int64
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if p.ZoneID == nil {
			unzoned++
			continue
		}
		counts[*p.ZoneID]++
	}
	return counts, unzoned, nil
}

func (r *stubProductRepo) ListExpiring(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.ExpiryDate != nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Inventory repository stub ─────────────────────────────────────────────────

type stubInventoryRepo struct {
	stocks map[uuid.UUID]int
	logs   []model.InventoryLog
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{stocks: make(map[uuid.UUID]int)}
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, inv *model.Inventory) error {
	r.stocks[inv.ProductID] = inv.Stock
	return nil
}

func (r *stubInventoryRepo) FindByProduct(_ context.Context, productID uuid.UUID) (*model.Inventory, error) {
	stock, ok := r.stocks[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Inventory{ProductID: productID, Stock: stock}, nil
}

func (r *stubInventoryRepo) LockForUpdateTx(_ *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	stock, ok := r.stocks[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Inventory{ProductID: productID, Stock: stock}, nil
}

func (r *stubInventoryRepo) UpdateStockTx(_ *gorm.DB, productID uuid.UUID, stock int) error {
	r.stocks[productID] = stock
	return nil
}

func (r *stubInventoryRepo) AppendLogTx(_ *gorm.DB, entry *model.InventoryLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *stubInventoryRepo) StockMap(_ context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int)
	for _, id := range productIDs {
		if stock, ok := r.stocks[id]; ok {
			out[id] = stock
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) RecentLogs(_ context.Context, limit int) ([]model.InventoryLog, error) {
	out := make([]model.InventoryLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

func (r *stubInventoryRepo) LogsForProduct(_ context.Context, productID uuid.UUID, limit int) ([]model.InventoryLog, error) {
	out := make([]model.InventoryLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.logs[i].ProductID == productID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Zone repository stub ──────────────────────────────────────────────────────

type stubZoneRepo struct {
	zones     []model.Zone
	listCalls int
}

func (r *stubZoneRepo) List(_ context.Context) ([]model.Zone, error) {
	r.listCalls++
	return r.zones, nil
}

var _ repository.ZoneRepository = (*stubZoneRepo)(nil)

// ── Setting repository stub ───────────────────────────────────────────────────

type stubSettingRepo struct {
	values map[string]int
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{values: make(map[string]int)}
}

func (r *stubSettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Setting{Key: key, Value: v}, nil
}

func (r *stubSettingRepo) Upsert(_ context.Context, key string, value int) error {
	r.values[key] = value
	return nil
}

var _ repository.SettingRepository = (*stubSettingRepo)(nil)

// ── Identity / profile stubs ──────────────────────────────────────────────────

type stubIdentityRepo struct {
	byEmail   map[string]*model.AuthIdentity
	createErr error
	deleteErr error
	deleted   []uuid.UUID
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byEmail: make(map[string]*model.AuthIdentity)}
}

func (r *stubIdentityRepo) Create(_ context.Context, ident *model.AuthIdentity) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[ident.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if ident.ID == uuid.Nil {
		ident.ID = uuid.New()
	}
	cp := *ident
	r.byEmail[ident.Email] = &cp
	return nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for email, ident := range r.byEmail {
		if ident.ID == id {
			delete(r.byEmail, email)
		}
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*model.AuthIdentity, error) {
	ident, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ident
	return &cp, nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AuthIdentity, error) {
	for _, ident := range r.byEmail {
		if ident.ID == id {
			cp := *ident
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.IdentityRepository = (*stubIdentityRepo)(nil)

type stubProfileRepo struct {
	profiles  map[uuid.UUID]*model.UserProfile
	upsertErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uuid.UUID]*model.UserProfile)}
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *model.UserProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProfileRepo) List(_ context.Context) ([]model.UserProfile, error) {
	out := make([]model.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProfileRepo) SetActive(_ context.Context, userID uuid.UUID, active bool) error {
	p, ok := r.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = active
	return nil
}

func (r *stubProfileRepo) SetDisplayName(_ context.Context, userID uuid.UUID, name string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.DisplayName = name
	return nil
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)

// ── Storage stub ──────────────────────────────────────────────────────────────

type stubStore struct {
	uploaded  map[string][]byte
	removed   []string
	removeErr error
}

func newStubStore() *stubStore {
	return &stubStore{uploaded: make(map[string][]byte)}
}

func (s *stubStore) Upload(_ context.Context, path string, data []byte) error {
	s.uploaded[path] = data
	return nil
}

func (s *stubStore) Remove(_ context.Context, paths []string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, paths...)
	return nil
}

func (s *stubStore) PublicURL(path string) string {
	return "http://localhost/storage/object/public/product-photos/" + path
}

// ── Shared fixtures ───────────────────────────────────────────────────────────

func adminProfile() *model.UserProfile {
	return &model.UserProfile{UserID: uuid.New(), DisplayName: "관리자", Role: model.RoleAdmin, Active: true}
}

func staffProfile() *model.UserProfile {
	return &model.UserProfile{UserID: uuid.New(), DisplayName: "직원", Role: model.RoleStaff, Active: true}
}

func strPtr(s string) *string { return &s }
