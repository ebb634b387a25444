package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item in the warehouse catalog.
// Active=false is the archived state: hidden from active views but retained
// with its full inventory history until an admin hard-deletes it.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Manufacturer  *string
	ZoneID        *uuid.UUID `gorm:"type:uuid;index"` // nil = unzoned
	Unit          *string
	Spec          *string
	OriginCountry *string
	// ExpiryDate is a calendar date (no time component) in the warehouse's
	// local timezone; nil means the product does not expire.
	ExpiryDate *time.Time `gorm:"type:date"`
	// PhotoRef is either a storage-relative path inside the photo bucket or
	// an external absolute URL. See storage.ResolvePhotoRef.
	PhotoRef      *string
	Active        bool `gorm:"not null;default:true;index"`
	ArchiveReason *string
	ArchivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Zone *Zone `gorm:"foreignKey:ZoneID"`
}
