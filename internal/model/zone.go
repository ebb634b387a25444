package model

import (
	"time"

	"github.com/google/uuid"
)

// Zone is a named storage location used to filter and group products.
// Reference data: seeded once, ordered by SortOrder, effectively immutable.
type Zone struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}
