package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed ledger page sizes: the dashboard shows 20 entries, the product
// detail view 50. Requests asking for more are clamped, never expanded.
const (
	RecentActivityLimit = 20
	ProductLogsLimit    = 50
)

// InventoryService is the stock ledger. AdjustStock is the only write path
// for stock and keeps two invariants: stock never goes below zero, and every
// change appends exactly one log row with consistent before/after snapshots.
type InventoryService interface {
	AdjustStock(ctx context.Context, actor *model.UserProfile, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.InventoryResponse, error)
	GetStock(ctx context.Context, productID uuid.UUID) (*dto.InventoryResponse, error)
	RecentActivity(ctx context.Context, limit int) ([]dto.LogEntryResponse, error)
	LogsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]dto.LogEntryResponse, error)
}

type inventoryService struct {
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
}

func NewInventoryService(repo repository.InventoryRepository, productRepo repository.ProductRepository) InventoryService {
	return &inventoryService{repo: repo, productRepo: productRepo}
}

// AdjustStock applies a signed delta atomically: the inventory row is locked
// for the duration of the transaction, the outcome is computed from the
// locked value (never from client state), and the ledger entry is written in
// the same transaction. Concurrent adjustments on one product serialize on
// the row lock, so lost updates and negative stock cannot happen under race.
func (s *inventoryService) AdjustStock(ctx context.Context, actor *model.UserProfile, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	if req.Delta == 0 {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "delta must be a nonzero integer")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ProductNotFound()
		}
		return nil, err
	}
	if !product.Active {
		return nil, apierror.ProductArchived()
	}

	actorName := actor.DisplayName
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.repo.LockForUpdateTx(tx, productID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// Self-heal a missing inventory row; the product row is the
			// source of truth for existence, stock starts at zero.
			inv = &model.Inventory{ProductID: productID, Stock: 0}
			if err := s.repo.CreateTx(tx, inv); err != nil {
				return err
			}
		}

		before := inv.Stock
		after := before + req.Delta
		if after < 0 {
			return apierror.InsufficientStock()
		}

		if err := s.repo.UpdateStockTx(tx, productID, after); err != nil {
			return err
		}
		return s.repo.AppendLogTx(tx, &model.InventoryLog{
			ProductID:   productID,
			Delta:       req.Delta,
			BeforeStock: before,
			AfterStock:  after,
			Note:        req.Note,
			CreatedBy:   actor.UserID,
			ActorName:   &actorName,
			CreatedAt:   time.Now(),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	// Re-read after commit: the transaction's outcome is authoritative, the
	// client never extrapolates the new stock from its own delta.
	return s.GetStock(ctx, productID)
}

func (s *inventoryService) GetStock(ctx context.Context, productID uuid.UUID) (*dto.InventoryResponse, error) {
	inv, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.InventoryResponse{ProductID: productID.String(), Stock: 0}, nil
		}
		return nil, err
	}
	return &dto.InventoryResponse{ProductID: inv.ProductID.String(), Stock: inv.Stock}, nil
}

func (s *inventoryService) RecentActivity(ctx context.Context, limit int) ([]dto.LogEntryResponse, error) {
	if limit < 1 || limit > RecentActivityLimit {
		limit = RecentActivityLimit
	}
	logs, err := s.repo.RecentLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	return logsToResponses(logs), nil
}

func (s *inventoryService) LogsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]dto.LogEntryResponse, error) {
	if limit < 1 || limit > ProductLogsLimit {
		limit = ProductLogsLimit
	}
	logs, err := s.repo.LogsForProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	return logsToResponses(logs), nil
}

func logsToResponses(logs []model.InventoryLog) []dto.LogEntryResponse {
	out := make([]dto.LogEntryResponse, 0, len(logs))
	for i := range logs {
		out = append(out, logToResponse(&logs[i]))
	}
	return out
}

func logToResponse(l *model.InventoryLog) dto.LogEntryResponse {
	resp := dto.LogEntryResponse{
		ID:          l.ID.String(),
		ProductID:   l.ProductID.String(),
		Delta:       l.Delta,
		BeforeStock: l.BeforeStock,
		AfterStock:  l.AfterStock,
		Note:        l.Note,
		Kind:        l.Kind(),
		CreatedBy:   l.CreatedBy.String(),
		ActorLabel:  l.ActorLabel(),
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Product != nil {
		resp.ProductName = l.Product.Name
	}
	return resp
}
