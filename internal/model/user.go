package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Admin unlocks user management, hard delete, and the
// expiry-warning-threshold setting.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// AuthIdentity is the credential record — deliberately a separate table from
// UserProfile. The two are written by different calls (see
// AdminService.CreateUser) and are NOT atomic with each other; profile
// failure after identity creation triggers a compensating delete.
type AuthIdentity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}

func (AuthIdentity) TableName() string { return "auth_identities" }

// UserProfile carries the authorization state for one identity.
// Active=false blocks all authenticated access regardless of role.
type UserProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"not null"`
	Role        string    `gorm:"type:varchar(20);not null;default:'staff'"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

func (UserProfile) TableName() string { return "users_profile" }

// IsAdmin reports whether the profile may use the admin surface.
func (p *UserProfile) IsAdmin() bool { return p.Role == RoleAdmin }
