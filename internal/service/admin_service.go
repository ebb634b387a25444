package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 6

// AdminService is the user-management surface. Every operation requires an
// active admin caller; the handlers enforce that before calling in, and the
// service re-checks so the rule holds even for internal callers.
type AdminService interface {
	ListUsers(ctx context.Context, actor *model.UserProfile) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, actor *model.UserProfile, req dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	SetUserActive(ctx context.Context, actor *model.UserProfile, userID uuid.UUID, active bool) error
	SetDisplayName(ctx context.Context, actor *model.UserProfile, userID uuid.UUID, name string) error
}

type adminService struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
}

func NewAdminService(identities repository.IdentityRepository, profiles repository.ProfileRepository) AdminService {
	return &adminService{identities: identities, profiles: profiles}
}

func (s *adminService) ListUsers(ctx context.Context, actor *model.UserProfile) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, apierror.AdminOnly()
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileToResponse(&profiles[i]))
	}
	return &dto.UserListResponse{Data: out}, nil
}

// CreateUser writes the credential record and the profile as two separate,
// non-atomic steps. When the profile write fails the identity is deleted
// best-effort so the email can be retried; a failed compensation leaves an
// orphaned identity, which is logged loudly and surfaces as
// profile_upsert_failed either way.
func (s *adminService) CreateUser(ctx context.Context, actor *model.UserProfile, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apierror.AdminOnly()
	}

	displayName := strings.TrimSpace(req.DisplayName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if displayName == "" || email == "" || req.Password == "" {
		return nil, apierror.MissingFields()
	}
	if !strings.Contains(email, "@") {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeInvalidEmail, "invalid email")
	}
	if len(req.Password) < minPasswordLen {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeWeakPassword, "password must be at least 6 characters")
	}

	if _, err := s.identities.FindByEmail(ctx, email); err == nil {
		return nil, apierror.New(http.StatusConflict, apierror.CodeDuplicateEmail, "duplicate email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.New(http.StatusInternalServerError, apierror.CodeCreateUserFailed, "create user failed")
	}

	ident := &model.AuthIdentity{Email: email, PasswordHash: string(hash)}
	if err := s.identities.Create(ctx, ident); err != nil {
		// The email check above is not atomic with the insert; a concurrent
		// create lands here via the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.New(http.StatusConflict, apierror.CodeDuplicateEmail, "duplicate email")
		}
		log.Error().Err(err).Str("email", email).Msg("identity create failed")
		return nil, apierror.New(http.StatusInternalServerError, apierror.CodeCreateUserFailed, "create user failed")
	}

	profile := &model.UserProfile{
		UserID:      ident.ID,
		DisplayName: displayName,
		Role:        model.RoleStaff,
		Active:      true,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		log.Error().Err(err).Str("user_id", ident.ID.String()).Msg("profile upsert failed, rolling back identity")
		if delErr := s.identities.Delete(ctx, ident.ID); delErr != nil {
			log.Error().Err(delErr).Str("user_id", ident.ID.String()).Msg("compensating identity delete failed, orphaned identity")
		}
		return nil, apierror.New(http.StatusInternalServerError, apierror.CodeProfileUpsertFailed, "profile upsert failed")
	}

	return &dto.CreateUserResponse{OK: true, UserID: ident.ID.String()}, nil
}

// SetUserActive flips a user's access. An admin can never deactivate their
// own account, so the system always keeps at least one working admin.
func (s *adminService) SetUserActive(ctx context.Context, actor *model.UserProfile, userID uuid.UUID, active bool) error {
	if !actor.IsAdmin() {
		return apierror.AdminOnly()
	}
	if !active && userID == actor.UserID {
		return apierror.SelfDeactivate()
	}
	if _, err := s.profiles.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.New(http.StatusNotFound, apierror.CodeNotFound, "user not found")
		}
		return err
	}
	return s.profiles.SetActive(ctx, userID, active)
}

// SetDisplayName renames a user. Writing the same name back is a no-op
// success rather than a redundant update.
func (s *adminService) SetDisplayName(ctx context.Context, actor *model.UserProfile, userID uuid.UUID, name string) error {
	if !actor.IsAdmin() {
		return apierror.AdminOnly()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apierror.MissingFields()
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.New(http.StatusNotFound, apierror.CodeNotFound, "user not found")
		}
		return err
	}
	if profile.DisplayName == name {
		return nil
	}
	return s.profiles.SetDisplayName(ctx, userID, name)
}
