package models

import "time"

// Member roles. The conductor leads rehearsals and is excluded from
// attendance/fee aggregation.
const (
	RoleAdmin     = "admin"
	RoleConductor = "conductor"
	RoleMember    = "member"
)

// Voice parts.
const (
	PartSoprano = "soprano"
	PartAlto    = "alto"
	PartTenor   = "tenor"
	PartBass    = "bass"
)

// Member is the authoritative roster row. The ledger engine only reads it;
// creation and deletion happen through the roster endpoints.
type Member struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:120;not null"`
	Role   string `json:"role" gorm:"size:20;not null;default:member"` // admin | conductor | member
	Part   string `json:"part" gorm:"size:20"`                         // soprano | alto | tenor | bass
	Active bool   `json:"active" gorm:"not null;default:true"`
	Frozen bool   `json:"frozen" gorm:"not null;default:false"` // temporarily excused from obligations

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Obligated reports whether ledger rows should be generated for the member.
func (m *Member) Obligated() bool {
	return m.Active && !m.Frozen
}
