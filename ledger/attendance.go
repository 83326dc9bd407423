package ledger

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/emirkaya/ChoirSystem/models"
)

func validStatus(s string) bool {
	switch s {
	case models.AttendancePending, models.AttendancePresent,
		models.AttendanceAbsent, models.AttendanceExcused:
		return true
	}
	return false
}

func getRecord(db *gorm.DB, id uint) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SetStatus is the admin-side toggle. Transitions are unrestricted; the UI
// cycles through statuses freely. Moving to EXCUSED requires an excuse text
// and stamps the submission time; moving anywhere else clears the excuse
// fields. The approval flag resets on every transition.
func SetStatus(db *gorm.DB, id uint, status, excuse string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !validStatus(status) {
		return ErrValidation
	}

	rec, err := getRecord(db, id)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"status":          status,
		"excuse_approved": false,
	}
	if status == models.AttendanceExcused {
		excuse = strings.TrimSpace(excuse)
		if excuse == "" {
			return ErrValidation
		}
		now := time.Now()
		updates["excuse"] = excuse
		updates["excused_at"] = &now
	} else {
		updates["excuse"] = ""
		updates["excused_at"] = nil
	}

	return db.Model(&models.AttendanceRecord{}).Where("id = ?", rec.ID).Updates(updates).Error
}

// SubmitExcuse is member self-service. Only the record's own member may
// excuse it, and only from PENDING or ABSENT; a PRESENT or already-EXCUSED
// record stays as decided.
func SubmitExcuse(db *gorm.DB, id, requesterID uint, excuse string) error {
	excuse = strings.TrimSpace(excuse)
	if excuse == "" {
		return ErrValidation
	}

	rec, err := getRecord(db, id)
	if err != nil {
		return err
	}
	if rec.MemberID != requesterID {
		return ErrForbidden
	}
	if rec.Status != models.AttendancePending && rec.Status != models.AttendanceAbsent {
		return ErrInvalidState
	}

	now := time.Now()
	return db.Model(&models.AttendanceRecord{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"status":          models.AttendanceExcused,
		"excuse":          excuse,
		"excused_at":      &now,
		"excuse_approved": false,
	}).Error
}

// ApproveExcuse marks the stored excuse as accepted without touching the
// status. Admin-only; route-level role check.
func ApproveExcuse(db *gorm.DB, id uint) error {
	rec, err := getRecord(db, id)
	if err != nil {
		return err
	}
	if rec.Status != models.AttendanceExcused {
		return ErrInvalidState
	}
	return db.Model(&models.AttendanceRecord{}).Where("id = ?", rec.ID).
		Update("excuse_approved", true).Error
}
