package service

import (
	"context"
	"testing"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInventory(t *testing.T, initialStock int) (InventoryService, *stubProductRepo, *stubInventoryRepo, uuid.UUID) {
	t.Helper()
	productRepo := newStubProductRepo()
	invRepo := newStubInventoryRepo()

	p := &model.Product{Name: "양파즙", Active: true}
	require.NoError(t, productRepo.CreateTx(nil, p))
	require.NoError(t, invRepo.CreateTx(nil, &model.Inventory{ProductID: p.ID, Stock: initialStock}))

	return NewInventoryService(invRepo, productRepo), productRepo, invRepo, p.ID
}

func TestAdjustStockInAndOut(t *testing.T) {
	svc, _, invRepo, productID := setupInventory(t, 0)
	actor := staffProfile()
	ctx := context.Background()

	resp, err := svc.AdjustStock(ctx, actor, productID, dto.AdjustStockRequest{Delta: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Stock)

	resp, err = svc.AdjustStock(ctx, actor, productID, dto.AdjustStockRequest{Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Stock)

	require.Len(t, invRepo.logs, 2)
	assert.Equal(t, "IN", invRepo.logs[0].Kind())
	assert.Equal(t, "OUT", invRepo.logs[1].Kind())
}

func TestAdjustStockLedgerChain(t *testing.T) {
	svc, _, invRepo, productID := setupInventory(t, 0)
	actor := staffProfile()
	ctx := context.Background()

	for _, delta := range []int{5, -2, 7, -1} {
		_, err := svc.AdjustStock(ctx, actor, productID, dto.AdjustStockRequest{Delta: delta})
		require.NoError(t, err)
	}

	// Every entry's after must equal before+delta, and each entry's before
	// must equal the previous entry's after.
	prev := 0
	for _, entry := range invRepo.logs {
		assert.Equal(t, prev, entry.BeforeStock)
		assert.Equal(t, entry.BeforeStock+entry.Delta, entry.AfterStock)
		prev = entry.AfterStock
	}
	assert.Equal(t, 9, prev)
}

func TestAdjustStockZeroDeltaRejected(t *testing.T) {
	svc, _, invRepo, productID := setupInventory(t, 3)

	_, err := svc.AdjustStock(context.Background(), staffProfile(), productID, dto.AdjustStockRequest{Delta: 0})
	require.Error(t, err)
	ae := apierror.From(err)
	assert.Equal(t, apierror.CodeValidationFailed, ae.Code)
	assert.Empty(t, invRepo.logs)
}

func TestAdjustStockInsufficient(t *testing.T) {
	svc, _, invRepo, productID := setupInventory(t, 3)

	_, err := svc.AdjustStock(context.Background(), staffProfile(), productID, dto.AdjustStockRequest{Delta: -5})
	require.Error(t, err)
	ae := apierror.From(err)
	assert.Equal(t, apierror.CodeInsufficientStock, ae.Code)
	assert.Equal(t, "insufficient stock", ae.Message)

	// Rejection leaves stock untouched and appends nothing.
	assert.Equal(t, 3, invRepo.stocks[productID])
	assert.Empty(t, invRepo.logs)
}

func TestAdjustStockWithdrawToExactlyZero(t *testing.T) {
	svc, _, _, productID := setupInventory(t, 3)

	resp, err := svc.AdjustStock(context.Background(), staffProfile(), productID, dto.AdjustStockRequest{Delta: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	svc, _, _, _ := setupInventory(t, 0)

	_, err := svc.AdjustStock(context.Background(), staffProfile(), uuid.New(), dto.AdjustStockRequest{Delta: 1})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeProductNotFound, apierror.From(err).Code)
}

func TestAdjustStockArchivedProductRejected(t *testing.T) {
	svc, productRepo, _, productID := setupInventory(t, 5)
	require.NoError(t, productRepo.Archive(context.Background(), productID, "단종"))

	_, err := svc.AdjustStock(context.Background(), staffProfile(), productID, dto.AdjustStockRequest{Delta: 1})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeProductArchived, apierror.From(err).Code)
}

func TestAdjustStockSelfHealsMissingRow(t *testing.T) {
	productRepo := newStubProductRepo()
	invRepo := newStubInventoryRepo()
	p := &model.Product{Name: "참기름", Active: true}
	require.NoError(t, productRepo.CreateTx(nil, p))
	svc := NewInventoryService(invRepo, productRepo)

	// No inventory row exists; the adjustment creates one starting at zero.
	resp, err := svc.AdjustStock(context.Background(), staffProfile(), p.ID, dto.AdjustStockRequest{Delta: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)
	require.Len(t, invRepo.logs, 1)
	assert.Equal(t, 0, invRepo.logs[0].BeforeStock)
}

func TestAdjustStockRecordsActorSnapshot(t *testing.T) {
	svc, _, invRepo, productID := setupInventory(t, 0)
	actor := staffProfile()

	_, err := svc.AdjustStock(context.Background(), actor, productID, dto.AdjustStockRequest{Delta: 1, Note: strPtr("입고")})
	require.NoError(t, err)

	require.Len(t, invRepo.logs, 1)
	entry := invRepo.logs[0]
	assert.Equal(t, actor.UserID, entry.CreatedBy)
	require.NotNil(t, entry.ActorName)
	assert.Equal(t, actor.DisplayName, *entry.ActorName)
	assert.Equal(t, actor.DisplayName, entry.ActorLabel())
}

func TestGetStockMissingRowIsZero(t *testing.T) {
	svc, _, _, _ := setupInventory(t, 0)

	resp, err := svc.GetStock(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)
}

func TestActorLabelFallbacks(t *testing.T) {
	userID := uuid.New()

	withName := model.InventoryLog{CreatedBy: userID, ActorName: strPtr(" 김실장 ")}
	assert.Equal(t, "김실장", withName.ActorLabel())

	noName := model.InventoryLog{CreatedBy: userID}
	assert.Equal(t, userID.String()[:8], noName.ActorLabel())

	blank := model.InventoryLog{CreatedBy: userID, ActorName: strPtr("   ")}
	assert.Equal(t, userID.String()[:8], blank.ActorLabel())

	nobody := model.InventoryLog{}
	assert.Equal(t, "unknown", nobody.ActorLabel())
}

func TestLogKinds(t *testing.T) {
	in := model.InventoryLog{Delta: 3}
	out := model.InventoryLog{Delta: -3}
	adjust := model.InventoryLog{Delta: 3, Note: strPtr(model.NoteAdjust)}

	assert.Equal(t, "IN", in.Kind())
	assert.Equal(t, "OUT", out.Kind())
	assert.Equal(t, "ADJUST", adjust.Kind())
}
