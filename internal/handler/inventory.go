package handler

import (
	"net/http"
	"strconv"

	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust godoc
// @Summary      Adjust stock by a signed delta
// @Description  Locks the inventory row, applies the delta, and appends one ledger entry in the same transaction. Stock can never go below zero; an over-withdrawal fails with insufficient_stock and changes nothing.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Product UUID"
// @Param        body body dto.AdjustStockRequest true "Signed delta and optional note"
// @Success      200  {object} dto.InventoryResponse
// @Failure      409  {object} apierror.Envelope
// @Router       /products/{id}/stock [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), middleware.GetProfile(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStock godoc
// @Summary      Current stock for one product
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      200  {object} dto.InventoryResponse
// @Router       /products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logs godoc
// @Summary      Ledger entries for one product
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Product UUID"
// @Param        limit query int    false "Max entries"
// @Success      200  {object} dto.LogListResponse
// @Router       /products/{id}/logs [get]
func (h *InventoryHandler) Logs(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	logs, err := h.svc.LogsForProduct(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LogListResponse{Data: logs})
}

// RecentActivity godoc
// @Summary      Most recent ledger entries across all products
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max entries"
// @Success      200  {object} dto.LogListResponse
// @Router       /inventory/activity [get]
func (h *InventoryHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	logs, err := h.svc.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LogListResponse{Data: logs})
}
