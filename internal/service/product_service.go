package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/expiry"
	"github.com/kim-DL/onnuri-inven/internal/export"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"
	"github.com/kim-DL/onnuri-inven/internal/search"
	"github.com/kim-DL/onnuri-inven/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ProductService covers the catalog plus the archival workflow:
// active → archived → restored, or archived → hard-deleted (terminal).
type ProductService interface {
	Create(ctx context.Context, actor *model.UserProfile, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListArchived(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Archive(ctx context.Context, id uuid.UUID, reason string) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, actor *model.UserProfile, req dto.DeleteProductRequest) error
	AttachPhoto(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.ProductResponse, error)
	ExportCSV(ctx context.Context, filter dto.ProductFilter) (string, []byte, error)
}

type productService struct {
	repo     repository.ProductRepository
	invRepo  repository.InventoryRepository
	zoneRepo repository.ZoneRepository
	settings SettingsService
	store    storage.Store
}

func NewProductService(
	repo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	zoneRepo repository.ZoneRepository,
	settings SettingsService,
	store storage.Store,
) ProductService {
	return &productService{
		repo:     repo,
		invRepo:  invRepo,
		zoneRepo: zoneRepo,
		settings: settings,
		store:    store,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *productService) Create(ctx context.Context, actor *model.UserProfile, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "name required")
	}

	p := &model.Product{
		Name:          name,
		Manufacturer:  trimmedOrNil(req.Manufacturer),
		Unit:          trimmedOrNil(req.Unit),
		Spec:          trimmedOrNil(req.Spec),
		OriginCountry: trimmedOrNil(req.OriginCountry),
		PhotoRef:      trimmedOrNil(req.PhotoRef),
		Active:        true,
	}

	if req.ZoneID != nil && strings.TrimSpace(*req.ZoneID) != "" {
		zoneID, err := uuid.Parse(strings.TrimSpace(*req.ZoneID))
		if err != nil {
			return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "invalid zone id")
		}
		p.ZoneID = &zoneID
	}
	if req.ExpiryDate != nil && strings.TrimSpace(*req.ExpiryDate) != "" {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*req.ExpiryDate), expiry.Location)
		if err != nil {
			return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "invalid expiry date")
		}
		p.ExpiryDate = &d
	}

	actorName := actor.DisplayName
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		// The inventory row always starts at zero; an initial quantity is a
		// regular stock-in entry so the ledger chain covers the whole history.
		if err := s.invRepo.CreateTx(tx, &model.Inventory{ProductID: p.ID, Stock: 0}); err != nil {
			return err
		}
		if req.InitialStock != nil && *req.InitialStock > 0 {
			initial := *req.InitialStock
			if err := s.invRepo.UpdateStockTx(tx, p.ID, initial); err != nil {
				return err
			}
			if err := s.invRepo.AppendLogTx(tx, &model.InventoryLog{
				ProductID:   p.ID,
				Delta:       initial,
				BeforeStock: 0,
				AfterStock:  initial,
				CreatedBy:   actor.UserID,
				ActorName:   &actorName,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, p.ID)
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ProductNotFound()
		}
		return nil, err
	}
	stock := 0
	if inv, err := s.invRepo.FindByProduct(ctx, id); err == nil {
		stock = inv.Stock
	}
	threshold, err := s.settings.GetExpiryWarningDays(ctx)
	if err != nil {
		threshold = model.DefaultExpiryWarningDays
	}
	resp := s.toResponse(p, stock, threshold, time.Now())
	return &resp, nil
}

// listFiltered resolves the zone filter (explicit id or zone-name token
// override), fetches the active products, and applies the token search. Both
// the paginated listing and the CSV export run on the same result.
func (s *productService) listFiltered(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	zoneNames := make([]string, 0, len(zones))
	zoneIDByName := make(map[string]uuid.UUID, len(zones))
	for _, z := range zones {
		zoneNames = append(zoneNames, z.Name)
		zoneIDByName[z.Name] = z.ID
	}

	tokens := search.ParseTokens(filter.Query)
	var zoneID *uuid.UUID
	if filter.ZoneID != "" {
		id, err := uuid.Parse(filter.ZoneID)
		if err != nil {
			return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "invalid zone id")
		}
		zoneID = &id
	} else if name, ok := search.ExtractZoneOverride(tokens, zoneNames); ok {
		id := zoneIDByName[name]
		zoneID = &id
	}

	products, err := s.repo.List(ctx, true, zoneID)
	if err != nil {
		return nil, err
	}

	filtered := products[:0:0]
	for _, p := range products {
		if search.TokensMatch(searchableText(&p), tokens) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	filtered, err := s.listFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	total := int64(len(filtered))
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	pageItems := filtered[start:end]

	responses, err := s.toResponses(ctx, pageItems)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Data: responses, Total: total, Page: page, Limit: limit}, nil
}

func (s *productService) ListArchived(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, false, nil)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products)
}

// ── Update ───────────────────────────────────────────────────────────────────

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ProductNotFound()
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" && p.Active {
			return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "name required")
		}
		p.Name = name
	}
	if req.Manufacturer != nil {
		p.Manufacturer = trimmedOrNil(req.Manufacturer)
	}
	if req.Unit != nil {
		p.Unit = trimmedOrNil(req.Unit)
	}
	if req.Spec != nil {
		p.Spec = trimmedOrNil(req.Spec)
	}
	if req.OriginCountry != nil {
		p.OriginCountry = trimmedOrNil(req.OriginCountry)
	}
	if req.PhotoRef != nil {
		p.PhotoRef = trimmedOrNil(req.PhotoRef)
	}
	if req.ZoneID != nil {
		if strings.TrimSpace(*req.ZoneID) == "" {
			p.ZoneID = nil
		} else {
			zoneID, err := uuid.Parse(strings.TrimSpace(*req.ZoneID))
			if err != nil {
				return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "invalid zone id")
			}
			p.ZoneID = &zoneID
		}
	}
	if req.ExpiryDate != nil {
		if strings.TrimSpace(*req.ExpiryDate) == "" {
			p.ExpiryDate = nil
		} else {
			d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*req.ExpiryDate), expiry.Location)
			if err != nil {
				return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "invalid expiry date")
			}
			p.ExpiryDate = &d
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ── Archival workflow ────────────────────────────────────────────────────────

// Archive soft-deletes a product. Any authenticated active user may archive;
// only hard delete is admin-gated. The reason is required and recorded.
func (s *productService) Archive(ctx context.Context, id uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apierror.ReasonRequired()
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ProductNotFound()
		}
		return err
	}
	if !p.Active {
		return apierror.AlreadyArchived()
	}
	return s.repo.Archive(ctx, id, reason)
}

// Restore is deliberately not idempotent: restoring an active product is an
// error, not a silent success.
func (s *productService) Restore(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ProductNotFound()
		}
		return err
	}
	if p.Active {
		return apierror.NotArchived()
	}
	return s.repo.Restore(ctx, id)
}

// HardDelete permanently removes an archived product, its inventory row, and
// its ledger. Preconditions, checked in order: caller is an active admin,
// payload complete, product exists, product archived, confirm name matches
// (case-insensitive, trimmed). The photo object is removed from storage
// before the database mutation; an unresolvable photo reference aborts the
// whole operation (fail closed).
func (s *productService) HardDelete(ctx context.Context, actor *model.UserProfile, req dto.DeleteProductRequest) error {
	if !actor.IsAdmin() {
		return apierror.AdminOnly()
	}

	rawID := strings.TrimSpace(req.ProductID)
	confirm := strings.TrimSpace(req.ConfirmName)
	if rawID == "" || confirm == "" {
		return apierror.MissingFields()
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apierror.ProductNotFound()
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ProductNotFound()
		}
		return apierror.New(http.StatusInternalServerError, apierror.CodeDeleteFailed, "delete failed")
	}
	if p.Active {
		return apierror.NotArchived()
	}
	if !strings.EqualFold(confirm, strings.TrimSpace(p.Name)) || strings.TrimSpace(p.Name) == "" {
		return apierror.NameMismatch()
	}

	photoRef := ""
	if p.PhotoRef != nil {
		photoRef = *p.PhotoRef
	}
	switch resolved := storage.ResolvePhotoRef(photoRef); resolved.Kind {
	case storage.KindInvalid:
		return apierror.New(http.StatusBadRequest, apierror.CodeInvalidPhotoPath, "invalid photo path")
	case storage.KindPath:
		if err := s.store.Remove(ctx, []string{resolved.Path}); err != nil {
			log.Error().Err(err).Str("product_id", id.String()).Msg("failed to remove product photo")
			return apierror.New(http.StatusInternalServerError, apierror.CodeStorageDeleteFailed, "storage delete failed")
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.HardDeleteTx(tx, id)
	})
	if txErr != nil {
		return apierror.New(http.StatusInternalServerError, apierror.CodeDeleteFailed, "delete failed")
	}
	return nil
}

// ── Photo upload ─────────────────────────────────────────────────────────────

func (s *productService) AttachPhoto(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ProductNotFound()
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "empty photo")
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("%s/%d%s", p.ID, time.Now().UnixNano(), ext)
	if err := s.store.Upload(ctx, key, data); err != nil {
		return nil, err
	}

	// Best-effort cleanup of the replaced photo; never blocks the upload.
	if p.PhotoRef != nil {
		if old := storage.ResolvePhotoRef(*p.PhotoRef); old.Kind == storage.KindPath {
			if err := s.store.Remove(ctx, []string{old.Path}); err != nil {
				log.Warn().Err(err).Str("product_id", id.String()).Msg("failed to remove replaced photo")
			}
		}
	}

	p.PhotoRef = &key
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ── CSV export ───────────────────────────────────────────────────────────────

// ExportCSV applies the same filter as List but renders the whole result in
// one unpaginated pass.
func (s *productService) ExportCSV(ctx context.Context, filter dto.ProductFilter) (string, []byte, error) {
	filtered, err := s.listFiltered(ctx, filter)
	if err != nil {
		return "", nil, err
	}
	responses, err := s.toResponses(ctx, filtered)
	if err != nil {
		return "", nil, err
	}

	rows := make([]export.Row, 0, len(responses))
	for _, p := range responses {
		exp := ""
		if p.ExpiryDate != nil {
			exp = *p.ExpiryDate
		}
		rows = append(rows, export.Row{
			Name:         p.Name,
			Zone:         export.ZoneLabel(p.ZoneName),
			Manufacturer: export.ManufacturerLabel(p.Manufacturer),
			Stock:        p.Stock,
			ExpiryDate:   exp,
		})
	}

	data, err := export.ProductsCSV(rows)
	if err != nil {
		return "", nil, err
	}
	return export.FileName(time.Now().In(expiry.Location)), data, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func (s *productService) toResponses(ctx context.Context, products []model.Product) ([]dto.ProductResponse, error) {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	stocks, err := s.invRepo.StockMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	threshold, err := s.settings.GetExpiryWarningDays(ctx)
	if err != nil {
		threshold = model.DefaultExpiryWarningDays
	}
	now := time.Now()
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, s.toResponse(&products[i], stocks[products[i].ID], threshold, now))
	}
	return out, nil
}

func (s *productService) toResponse(p *model.Product, stock, threshold int, now time.Time) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Manufacturer:  p.Manufacturer,
		Unit:          p.Unit,
		Spec:          p.Spec,
		OriginCountry: p.OriginCountry,
		Active:        p.Active,
		ArchiveReason: p.ArchiveReason,
		Stock:         stock,
		ExpiryStatus:  string(expiry.Classify(p.ExpiryDate, now, threshold)),
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.ZoneID != nil {
		zid := p.ZoneID.String()
		resp.ZoneID = &zid
	}
	if p.Zone != nil {
		name := p.Zone.Name
		resp.ZoneName = &name
	}
	if p.ExpiryDate != nil {
		d := p.ExpiryDate.In(expiry.Location).Format(dateLayout)
		resp.ExpiryDate = &d
		left := expiry.DaysLeft(*p.ExpiryDate, now)
		resp.DaysLeft = &left
	}
	if p.ArchivedAt != nil {
		at := p.ArchivedAt.UTC().Format(time.RFC3339)
		resp.ArchivedAt = &at
	}
	if p.PhotoRef != nil {
		switch resolved := storage.ResolvePhotoRef(*p.PhotoRef); resolved.Kind {
		case storage.KindExternal:
			url := strings.TrimSpace(*p.PhotoRef)
			resp.PhotoURL = &url
		case storage.KindPath:
			url := s.store.PublicURL(resolved.Path)
			resp.PhotoURL = &url
		}
	}
	return resp
}

func searchableText(p *model.Product) string {
	parts := []string{p.Name}
	if p.Manufacturer != nil {
		parts = append(parts, *p.Manufacturer)
	}
	if p.OriginCountry != nil {
		parts = append(parts, *p.OriginCountry)
	}
	if p.Zone != nil {
		parts = append(parts, p.Zone.Name)
	}
	return strings.Join(parts, " ")
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
