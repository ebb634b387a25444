package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Service stubs ─────────────────────────────────────────────────────────────

type stubProductService struct {
	hardDeleteErr error
	hardDeleted   []dto.DeleteProductRequest
}

func (s *stubProductService) Create(context.Context, *model.UserProfile, dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProductService) Get(context.Context, uuid.UUID) (*dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProductService) List(context.Context, dto.ProductFilter) (*dto.ProductListResponse, error) {
	return nil, nil
}
func (s *stubProductService) ListArchived(context.Context) ([]dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProductService) Update(context.Context, uuid.UUID, dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProductService) Archive(context.Context, uuid.UUID, string) error { return nil }
func (s *stubProductService) Restore(context.Context, uuid.UUID) error         { return nil }
func (s *stubProductService) HardDelete(_ context.Context, _ *model.UserProfile, req dto.DeleteProductRequest) error {
	if s.hardDeleteErr != nil {
		return s.hardDeleteErr
	}
	s.hardDeleted = append(s.hardDeleted, req)
	return nil
}
func (s *stubProductService) AttachPhoto(context.Context, uuid.UUID, string, []byte) (*dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProductService) ExportCSV(context.Context, dto.ProductFilter) (string, []byte, error) {
	return "", nil, nil
}

var _ service.ProductService = (*stubProductService)(nil)

type stubAdminService struct {
	createErr error
}

func (s *stubAdminService) ListUsers(context.Context, *model.UserProfile) (*dto.UserListResponse, error) {
	return &dto.UserListResponse{Data: []dto.ProfileResponse{}}, nil
}
func (s *stubAdminService) CreateUser(context.Context, *model.UserProfile, dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.CreateUserResponse{OK: true, UserID: uuid.NewString()}, nil
}
func (s *stubAdminService) SetUserActive(context.Context, *model.UserProfile, uuid.UUID, bool) error {
	return nil
}
func (s *stubAdminService) SetDisplayName(context.Context, *model.UserProfile, uuid.UUID, string) error {
	return nil
}

var _ service.AdminService = (*stubAdminService)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func newAdminRouter(users service.AdminService, products service.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Test auth shim: injects an admin profile the way JWTAuth would.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ProfileKey, &model.UserProfile{
			UserID: uuid.New(), DisplayName: "관리자", Role: model.RoleAdmin, Active: true,
		})
	})

	h := NewAdminHandler(users, products)
	r.POST("/api/admin/products/delete", h.DeleteProduct)
	r.POST("/api/admin/users", h.CreateUser)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ── Delete product route ──────────────────────────────────────────────────────

func TestDeleteProductSuccessEnvelope(t *testing.T) {
	products := &stubProductService{}
	r := newAdminRouter(&stubAdminService{}, products)

	w := doJSON(t, r, http.MethodPost, "/api/admin/products/delete",
		dto.DeleteProductRequest{ProductID: uuid.NewString(), ConfirmName: "식용유"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["ok"])
	require.Len(t, products.hardDeleted, 1)
}

func TestDeleteProductErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name       string
		err        *apierror.Error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"not archived", apierror.NotArchived(), http.StatusBadRequest, "not_archived", "not archived"},
		{"name mismatch", apierror.NameMismatch(), http.StatusBadRequest, "name_mismatch", "name mismatch"},
		{"missing fields", apierror.MissingFields(), http.StatusBadRequest, "missing_fields", "missing fields"},
		{"not found", apierror.ProductNotFound(), http.StatusNotFound, "product_not_found", "product not found"},
		{"admin only", apierror.AdminOnly(), http.StatusForbidden, "forbidden", "admin only"},
		{
			"invalid photo path",
			apierror.New(http.StatusBadRequest, apierror.CodeInvalidPhotoPath, "invalid photo path"),
			http.StatusBadRequest, "invalid_photo_path", "invalid photo path",
		},
		{
			"storage delete failed",
			apierror.New(http.StatusInternalServerError, apierror.CodeStorageDeleteFailed, "storage delete failed"),
			http.StatusInternalServerError, "storage_delete_failed", "storage delete failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAdminRouter(&stubAdminService{}, &stubProductService{hardDeleteErr: tc.err})
			w := doJSON(t, r, http.MethodPost, "/api/admin/products/delete",
				dto.DeleteProductRequest{ProductID: uuid.NewString(), ConfirmName: "x"})

			assert.Equal(t, tc.wantStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tc.wantCode, body["error"])
			assert.Equal(t, tc.wantDetail, body["detail"])
		})
	}
}

// A body that fails to parse gets the same missing_fields answer as an empty
// one; invalid_payload is not in the delete route's code set.
func TestDeleteProductMalformedBody(t *testing.T) {
	r := newAdminRouter(&stubAdminService{}, &stubProductService{})

	for _, raw := range []string{"{", `"not an object"`, ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products/delete", bytes.NewReader([]byte(raw)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "missing_fields", body["error"])
		assert.Equal(t, "missing fields", body["detail"])
	}
}

// ── Create user route ─────────────────────────────────────────────────────────

func TestCreateUserSuccessEnvelope(t *testing.T) {
	r := newAdminRouter(&stubAdminService{}, &stubProductService{})

	w := doJSON(t, r, http.MethodPost, "/api/admin/users",
		dto.CreateUserRequest{DisplayName: "새직원", Email: "a@b.c", Password: "secret99"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["user_id"])
}

func TestCreateUserErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name       string
		err        *apierror.Error
		wantStatus int
		wantCode   string
	}{
		{
			"weak password",
			apierror.New(http.StatusBadRequest, apierror.CodeWeakPassword, "password must be at least 6 characters"),
			http.StatusBadRequest, "weak_password",
		},
		{
			"duplicate email",
			apierror.New(http.StatusConflict, apierror.CodeDuplicateEmail, "duplicate email"),
			http.StatusConflict, "duplicate_email",
		},
		{
			"invalid email",
			apierror.New(http.StatusBadRequest, apierror.CodeInvalidEmail, "invalid email"),
			http.StatusBadRequest, "invalid_email",
		},
		{
			"profile upsert failed",
			apierror.New(http.StatusInternalServerError, apierror.CodeProfileUpsertFailed, "profile upsert failed"),
			http.StatusInternalServerError, "profile_upsert_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAdminRouter(&stubAdminService{createErr: tc.err}, &stubProductService{})
			w := doJSON(t, r, http.MethodPost, "/api/admin/users",
				dto.CreateUserRequest{DisplayName: "x", Email: "a@b.c", Password: "secret99"})

			assert.Equal(t, tc.wantStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tc.wantCode, body["error"])
		})
	}
}
