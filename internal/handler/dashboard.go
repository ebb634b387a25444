package handler

import (
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary      Dashboard overview
// @Description  Active product totals, per-zone counts, and the most recent ledger entries.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardSummaryResponse
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpiryAlerts godoc
// @Summary      Products approaching or past their expiry date
// @Description  Served from the last background scan; computed inline when no scan result is cached.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.ExpiryAlertsResponse
// @Router       /dashboard/expiry-alerts [get]
func (h *DashboardHandler) ExpiryAlerts(c *gin.Context) {
	resp, err := h.svc.ExpiryAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
