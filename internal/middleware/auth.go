package middleware

import (
	"strings"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"
	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClaimsKey  = "claims"
	ProfileKey = "profile"
)

// JWTAuth validates the Bearer token and loads the caller's profile on every
// protected route. The profile read is deliberate: role and active state come
// from the database on each request, so deactivating a user locks them out
// immediately even while their token is still unexpired.
func JWTAuth(auth service.AuthService, profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abort(c, apierror.NotAuthenticated())
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Type != "access" {
			abort(c, apierror.NotAuthenticated())
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abort(c, apierror.NotAuthenticated())
			return
		}

		profile, err := profiles.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			abort(c, apierror.NotAuthenticated())
			return
		}
		if !profile.Active {
			abort(c, apierror.InactiveUser())
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil || !profile.IsAdmin() {
			abort(c, apierror.AdminOnly())
			return
		}
		c.Next()
	}
}

// GetProfile retrieves the authenticated caller's profile from the Gin
// context; nil when the route is unauthenticated.
func GetProfile(c *gin.Context) *model.UserProfile {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return nil
	}
	profile, _ := v.(*model.UserProfile)
	return profile
}

func abort(c *gin.Context, e *apierror.Error) {
	c.AbortWithStatusJSON(e.Status, apierror.Body(e))
}
