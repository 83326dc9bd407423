package models

import "time"

// Attendance statuses. PENDING is the generated initial state; the others are
// toggled by an admin or reached through the excuse flow.
const (
	AttendancePending = "PENDING"
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceExcused = "EXCUSED"
)

// AttendanceRecord is one ledger row per (member, rehearsal) pair.
//
// Date is copied from the event at generation time so listings filter without
// a join; EventID stays the authoritative link and may be nil on rows created
// before the link existed. The relink job repairs those. There is deliberately
// no unique index on (member_id, date): concurrent generation can race past
// the generator's pre-check, and existing duplicate rows have to stay loadable,
// so the pre-check is the only guard.
type AttendanceRecord struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	MemberID uint   `json:"member_id" gorm:"index;not null"`
	EventID  *uint  `json:"event_id" gorm:"index"`
	Date     string `json:"date" gorm:"size:10;index;not null"` // YYYY-MM-DD
	Status   string `json:"status" gorm:"size:10;not null"`     // PENDING | PRESENT | ABSENT | EXCUSED

	Excuse         string     `json:"excuse" gorm:"type:text"`
	ExcusedAt      *time.Time `json:"excused_at"`
	ExcuseApproved bool       `json:"excuse_approved" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
