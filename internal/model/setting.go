package model

import "time"

// SettingKeyExpiryWarningDays is the single setting the application uses: the
// "approaching expiry" badge threshold in days (1–365).
const SettingKeyExpiryWarningDays = "expiry_warning_days"

// DefaultExpiryWarningDays is returned when the row has never been written.
const DefaultExpiryWarningDays = 100

// Setting is a process-wide key/value row. Readable by any authenticated
// user, writable by admin only.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     int    `gorm:"not null"`
	UpdatedAt time.Time
}
