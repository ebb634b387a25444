package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/config"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload for both access and refresh tokens. Role is
// embedded only as a hint; authorization always re-reads the profile so that
// a deactivation takes effect on the next request, not at token expiry.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	ParseToken(tokenString string) (*Claims, error)
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
}

type authService struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
	cfg        *config.Config
}

func NewAuthService(identities repository.IdentityRepository, profiles repository.ProfileRepository, cfg *config.Config) AuthService {
	return &authService{identities: identities, profiles: profiles, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ident, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotAuthenticated()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.NotAuthenticated()
	}

	profile, err := s.profiles.FindByUserID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotAuthenticated()
		}
		return nil, err
	}
	if !profile.Active {
		return nil, apierror.InactiveUser()
	}

	return s.issueTokens(profile)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, apierror.NotAuthenticated()
	}
	if claims.Type != tokenTypeRefresh {
		return nil, apierror.NotAuthenticated()
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apierror.NotAuthenticated()
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotAuthenticated()
		}
		return nil, err
	}
	if !profile.Active {
		return nil, apierror.InactiveUser()
	}

	return s.issueTokens(profile)
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotAuthenticated()
		}
		return nil, err
	}
	resp := profileToResponse(profile)
	return &resp, nil
}

func (s *authService) issueTokens(profile *model.UserProfile) (*dto.LoginResponse, error) {
	now := time.Now()
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	refreshTTL := time.Duration(s.cfg.JWTRefreshHours) * time.Hour

	access, err := s.sign(profile, tokenTypeAccess, now, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(profile, tokenTypeRefresh, now, refreshTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         profileToResponse(profile),
	}, nil
}

func (s *authService) sign(profile *model.UserProfile, typ string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: profile.UserID.String(),
		Role:   profile.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func profileToResponse(p *model.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:      p.UserID.String(),
		DisplayName: p.DisplayName,
		Role:        p.Role,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
