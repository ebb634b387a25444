package handler

import (
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler owns the admin-only surface: user management and the
// irreversible product hard delete.
type AdminHandler struct {
	users    service.AdminService
	products service.ProductService
}

func NewAdminHandler(users service.AdminService, products service.ProductService) *AdminHandler {
	return &AdminHandler{users: users, products: products}
}

// DeleteProduct godoc
// @Summary      Permanently delete an archived product
// @Description  Removes the product, its inventory row, its ledger, and its stored photo. The product must already be archived and the confirm_name must match the product name (case-insensitive, trimmed).
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DeleteProductRequest true "Product id and typed confirmation"
// @Success      200  {object} map[string]bool
// @Failure      400  {object} apierror.Envelope
// @Router       /admin/products/delete [post]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	var req dto.DeleteProductRequest
	// An unparseable body answers missing_fields, same as an empty one; the
	// delete route's error codes are a closed set.
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apierror.MissingFields()
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	if err := h.products.HardDelete(c.Request.Context(), middleware.GetProfile(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateUser godoc
// @Summary      Create a staff account
// @Description  Writes the credential record, then the profile. If the profile write fails the credential is rolled back so the email can be retried.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateUserRequest true "New user"
// @Success      201  {object} dto.CreateUserResponse
// @Failure      400  {object} apierror.Envelope
// @Failure      409  {object} apierror.Envelope
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeInvalidPayload, "invalid payload")
		c.JSON(e.Status, apierror.Body(e))
		return
	}
	resp, err := h.users.CreateUser(c.Request.Context(), middleware.GetProfile(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListUsers godoc
// @Summary      List all user profiles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.UserListResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	resp, err := h.users.ListUsers(c.Request.Context(), middleware.GetProfile(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetUserActive godoc
// @Summary      Activate or deactivate a user
// @Description  An admin cannot deactivate their own account.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "User UUID"
// @Param        body body dto.SetUserActiveRequest true "Active flag"
// @Success      204
// @Failure      400  {object} apierror.Envelope
// @Router       /admin/users/{id}/active [put]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, ok := userPathUUID(c)
	if !ok {
		return
	}
	var req dto.SetUserActiveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.users.SetUserActive(c.Request.Context(), middleware.GetProfile(c), userID, *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDisplayName godoc
// @Summary      Rename a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "User UUID"
// @Param        body body dto.SetDisplayNameRequest true "New display name"
// @Success      204
// @Failure      400  {object} apierror.Envelope
// @Router       /admin/users/{id}/display-name [put]
func (h *AdminHandler) SetDisplayName(c *gin.Context) {
	userID, ok := userPathUUID(c)
	if !ok {
		return
	}
	var req dto.SetDisplayNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.users.SetDisplayName(c.Request.Context(), middleware.GetProfile(c), userID, req.DisplayName); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func userPathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.New(http.StatusNotFound, apierror.CodeNotFound, "user not found"))
		return uuid.Nil, false
	}
	return id, true
}
