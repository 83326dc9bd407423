package models

import "time"

// Event types. Only rehearsals drive attendance-ledger generation.
const (
	EventRehearsal = "rehearsal"
	EventConcert   = "concert"
	EventSpecial   = "special"
)

type Event struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"size:120;not null"`
	Date  string `json:"date" gorm:"size:10;index;not null"` // YYYY-MM-DD
	Type  string `json:"type" gorm:"size:20;index;not null"` // rehearsal | concert | special

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
