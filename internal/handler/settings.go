package handler

import (
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetExpiryWarningDays godoc
// @Summary      Current expiry warning threshold in days
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.ExpiryWarningDaysResponse
// @Router       /settings/expiry-warning-days [get]
func (h *SettingsHandler) GetExpiryWarningDays(c *gin.Context) {
	days, err := h.svc.GetExpiryWarningDays(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExpiryWarningDaysResponse{Days: days})
}

// SetExpiryWarningDays godoc
// @Summary      Change the expiry warning threshold
// @Description  Admin only. Accepts 1 to 365 days; the change applies to every product's badge on the next read.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SetExpiryWarningDaysRequest true "Days"
// @Success      200  {object} dto.ExpiryWarningDaysResponse
// @Failure      400  {object} apierror.Envelope
// @Router       /settings/expiry-warning-days [put]
func (h *SettingsHandler) SetExpiryWarningDays(c *gin.Context) {
	var req dto.SetExpiryWarningDaysRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetExpiryWarningDays(c.Request.Context(), middleware.GetProfile(c), req.Days); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExpiryWarningDaysResponse{Days: req.Days})
}
