package handler

import (
	"net/http"

	"github.com/kim-DL/onnuri-inven/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if either step fails — the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeInvalidPayload, "invalid payload")
		c.JSON(e.Status, apierror.Body(e))
		return false
	}
	if err := validate.Struct(req); err != nil {
		e := apierror.New(http.StatusBadRequest, apierror.CodeValidationFailed, validationMessage(err))
		c.JSON(e.Status, apierror.Body(e))
		return false
	}
	return true
}

func validationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field() + " failed on " + fe.Tag()
	}
	return "validation failed"
}

// respondError maps any service error to its HTTP response. Unknown errors
// become an opaque 500 and are logged here; known *apierror.Error values
// carry their own status and code.
func respondError(c *gin.Context, err error) {
	e := apierror.From(err)
	if e.Code == apierror.CodeInternal {
		log.Error().
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg("request failed")
	}
	c.JSON(e.Status, apierror.Body(e))
}
