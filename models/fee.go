package models

import "time"

// FeeRecord is one ledger row per (member, year, month). The compound unique
// index is the authoritative duplicate guard; the generator additionally
// pre-checks and swallows conflicts so a lost race degrades to a skip.
type FeeRecord struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	MemberID uint `json:"member_id" gorm:"not null;uniqueIndex:idx_fee_member_period"`
	Year     int  `json:"year" gorm:"not null;uniqueIndex:idx_fee_member_period"`
	Month    int  `json:"month" gorm:"not null;uniqueIndex:idx_fee_member_period"` // 1..12
	Paid     bool `json:"paid" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
