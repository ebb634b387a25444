package handler

import (
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/gin-gonic/gin"
)

// ZonesHandler serves the fixed storage-zone list. Zones are seeded, not
// managed through the API, so this is read-only.
type ZonesHandler struct{ repo repository.ZoneRepository }

func NewZonesHandler(repo repository.ZoneRepository) *ZonesHandler { return &ZonesHandler{repo: repo} }

// List godoc
// @Summary      List storage zones
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.ZoneResponse
// @Router       /zones [get]
func (h *ZonesHandler) List(c *gin.Context) {
	zones, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, dto.ZoneResponse{
			ID:        z.ID.String(),
			Name:      z.Name,
			Active:    z.Active,
			SortOrder: z.SortOrder,
		})
	}
	c.JSON(http.StatusOK, out)
}
