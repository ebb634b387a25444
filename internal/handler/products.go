package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPhotoBytes = 5 << 20

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a product
// @Description  Creates the product and its inventory row at zero; a positive initial_stock is recorded as the first stock-in entry.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateProductRequest true "Product"
// @Success      201  {object} dto.ProductResponse
// @Failure      400  {object} apierror.Envelope
// @Router       /products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetProfile(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List active products
// @Description  Token search: the q parameter is split on commas and whitespace, every token must match, and a token equal to a zone name filters by that zone.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q        query string false "Search tokens"
// @Param        zone_id  query string false "Zone filter"
// @Param        page     query int    false "Page (1-based)"
// @Param        limit    query int    false "Page size"
// @Success      200  {object} dto.ProductListResponse
// @Router       /products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeInvalidPayload, "invalid query")
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListArchived godoc
// @Summary      List archived products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.ProductResponse
// @Router       /products/archived [get]
func (h *ProductsHandler) ListArchived(c *gin.Context) {
	resp, err := h.svc.ListArchived(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.Envelope
// @Router       /products/{id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update product fields
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "Product UUID"
// @Param        body body dto.UpdateProductRequest true "Fields to change"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.Envelope
// @Router       /products/{id} [patch]
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Archive godoc
// @Summary      Archive a product
// @Description  Soft delete with a required reason. The product keeps its inventory and ledger and can be restored.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "Product UUID"
// @Param        body body dto.ArchiveProductRequest true "Reason"
// @Success      204
// @Failure      400  {object} apierror.Envelope
// @Router       /products/{id}/archive [post]
func (h *ProductsHandler) Archive(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ArchiveProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Archive(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore godoc
// @Summary      Restore an archived product
// @Description  Fails with not_archived when the product is already active.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      204
// @Failure      400  {object} apierror.Envelope
// @Router       /products/{id}/restore [post]
func (h *ProductsHandler) Restore(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto godoc
// @Summary      Attach a photo to a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path     string true "Product UUID"
// @Param        photo formData file   true "Image file"
// @Success      200  {object} dto.ProductResponse
// @Failure      400  {object} apierror.Envelope
// @Router       /products/{id}/photo [post]
func (h *ProductsHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeInvalidPayload, "photo file required")
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	if file.Size > maxPhotoBytes {
		e := apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, "photo too large")
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.svc.AttachPhoto(c.Request.Context(), id, file.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV godoc
// @Summary      Export the filtered product list as CSV
// @Description  Applies the same token search as the list endpoint; the file is UTF-8 with BOM so spreadsheet apps detect the encoding.
// @Tags         products
// @Produce      text/csv
// @Security     BearerAuth
// @Param        q       query string false "Search tokens"
// @Param        zone_id query string false "Zone filter"
// @Success      200
// @Router       /products/export.csv [get]
func (h *ProductsHandler) ExportCSV(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeInvalidPayload, "invalid query")
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	name, data, err := h.svc.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// pathUUID parses the :id path parameter, writing the 404 response itself on
// failure so callers can bail with a bare return.
func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ProductNotFound())
		return uuid.Nil, false
	}
	return id, true
}
