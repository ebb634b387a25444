// Package apierror provides standardized error responses for the API.
// Every 4xx/5xx answer goes through this package so that clients always get
// a stable machine code and internals (stack traces, SQL errors) never leak.
//
// The Message field preserves the legacy substring contract ("not
// authenticated", "admin only", "not archived", …) that older clients match
// against; the Code field is the primary contract for new clients.
package apierror

import (
	"errors"
	"net/http"
)

// Code is the machine-readable error code returned in the response body.
type Code string

const (
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"
	CodeMissingFields       Code = "missing_fields"
	CodeInvalidPayload      Code = "invalid_payload"
	CodeValidationFailed    Code = "validation_failed"
	CodeNotFound            Code = "not_found"
	CodeProductNotFound     Code = "product_not_found"
	CodeNotArchived         Code = "not_archived"
	CodeAlreadyArchived     Code = "already_archived"
	CodeProductArchived     Code = "product_archived"
	CodeNameMismatch        Code = "name_mismatch"
	CodeInvalidPhotoPath    Code = "invalid_photo_path"
	CodeStorageDeleteFailed Code = "storage_delete_failed"
	CodeDeleteFailed        Code = "delete_failed"
	CodeInsufficientStock   Code = "insufficient_stock"
	CodeRateLimited         Code = "rate_limited"
	CodeReasonRequired      Code = "reason_required"
	CodeSelfDeactivate      Code = "self_deactivate"
	CodeInvalidDays         Code = "invalid_days"
	CodeDuplicateEmail      Code = "duplicate_email"
	CodeInvalidEmail        Code = "invalid_email"
	CodeWeakPassword        Code = "weak_password"
	CodeCreateUserFailed    Code = "create_user_failed"
	CodeProfileUpsertFailed Code = "profile_upsert_failed"
	CodeServerError         Code = "server_error"
	CodeServerMisconfigured Code = "server_misconfigured"
	CodeInternal            Code = "internal"
)

// Error is the canonical service-layer error. Services return *Error for
// every expected failure; handlers map it to the HTTP response verbatim.
type Error struct {
	Status  int
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// ── Shared taxonomy constructors ─────────────────────────────────────────────
// The messages are part of the wire contract — do not reword them.

func NotAuthenticated() *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, "not authenticated")
}

func AdminOnly() *Error {
	return New(http.StatusForbidden, CodeForbidden, "admin only")
}

func InactiveUser() *Error {
	return New(http.StatusForbidden, CodeForbidden, "inactive user")
}

func ProductNotFound() *Error {
	return New(http.StatusNotFound, CodeProductNotFound, "product not found")
}

func NotArchived() *Error {
	return New(http.StatusBadRequest, CodeNotArchived, "not archived")
}

func AlreadyArchived() *Error {
	return New(http.StatusConflict, CodeAlreadyArchived, "already archived")
}

func ProductArchived() *Error {
	return New(http.StatusConflict, CodeProductArchived, "product archived")
}

func NameMismatch() *Error {
	return New(http.StatusBadRequest, CodeNameMismatch, "name mismatch")
}

func ReasonRequired() *Error {
	return New(http.StatusBadRequest, CodeReasonRequired, "reason required")
}

func InsufficientStock() *Error {
	return New(http.StatusConflict, CodeInsufficientStock, "insufficient stock")
}

func SelfDeactivate() *Error {
	return New(http.StatusBadRequest, CodeSelfDeactivate, "cannot deactivate self")
}

func InvalidDays() *Error {
	return New(http.StatusBadRequest, CodeInvalidDays, "invalid days")
}

func MissingFields() *Error {
	return New(http.StatusBadRequest, CodeMissingFields, "missing fields")
}

func Internal() *Error {
	return New(http.StatusInternalServerError, CodeInternal, "internal error")
}

// Envelope is the JSON body written for every non-2xx response:
// {"ok":false,"error":"<code>","detail":"<message>"}.
type Envelope struct {
	OK     bool   `json:"ok"`
	Err    Code   `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Body builds the response envelope for an *Error.
func Body(e *Error) Envelope {
	return Envelope{OK: false, Err: e.Code, Detail: e.Message}
}

// From classifies an arbitrary error. Known *Error values pass through;
// anything else becomes an opaque 500.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal()
}
