// Package expiry derives the expiry badge for a product from its expiry date
// and the process-wide warning threshold. Calendar-day granularity in a fixed
// local offset: the badge flips at midnight KST, not at a rolling 24h mark.
package expiry

import "time"

// Location is the fixed warehouse timezone. All calendar-day math happens
// here regardless of the server's host timezone.
var Location = time.FixedZone("KST", 9*60*60)

// Status is the derived badge for a product.
type Status string

const (
	StatusNone        Status = "none"
	StatusApproaching Status = "approaching"
	StatusExpired     Status = "expired"
)

// midnight truncates t to 00:00 of its calendar day in Location.
func midnight(t time.Time) time.Time {
	y, m, d := t.In(Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

// DaysLeft returns expiryDate − today in whole calendar days. Negative means
// the date has passed, zero means it expires today.
func DaysLeft(expiryDate, today time.Time) int {
	return int(midnight(expiryDate).Sub(midnight(today)).Hours() / 24)
}

// Classify maps a product's expiry date to its badge:
// days_left < 0 → expired; 0 ≤ days_left ≤ threshold → approaching;
// otherwise none. A nil expiry date never gets a badge.
func Classify(expiryDate *time.Time, today time.Time, thresholdDays int) Status {
	if expiryDate == nil {
		return StatusNone
	}
	left := DaysLeft(*expiryDate, today)
	switch {
	case left < 0:
		return StatusExpired
	case left <= thresholdDays:
		return StatusApproaching
	default:
		return StatusNone
	}
}
