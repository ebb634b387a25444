package model

import (
	"strings"

	"github.com/google/uuid"
)

// Kind labels the entry for display: a manual correction reads ADJUST, else
// the delta sign decides IN or OUT.
func (l *InventoryLog) Kind() string {
	if l.Note != nil && strings.TrimSpace(*l.Note) == NoteAdjust {
		return NoteAdjust
	}
	switch {
	case l.Delta > 0:
		return "IN"
	case l.Delta < 0:
		return "OUT"
	default:
		return NoteAdjust
	}
}

// ActorLabel resolves the display label for the acting user: stored actor
// name, else the first 8 characters of the user id, else "unknown".
func (l *InventoryLog) ActorLabel() string {
	if l.ActorName != nil {
		if name := strings.TrimSpace(*l.ActorName); name != "" {
			return name
		}
	}
	if l.CreatedBy != uuid.Nil {
		return l.CreatedBy.String()[:8]
	}
	return "unknown"
}
