package ledger

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emirkaya/ChoirSystem/models"
)

// Report is the aggregate result of a generation pass. Per-row failures are
// logged and counted, never aborting the pass.
type Report struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// CreatePendingRecord inserts a PENDING attendance row for the member and
// rehearsal event unless one already exists for that (member, date). The
// existence check is the only duplicate guard; two racing generators can still
// both insert. Accepted: last-writer-wins, duplicates tolerated downstream.
func CreatePendingRecord(db *gorm.DB, memberID uint, event *models.Event) (bool, error) {
	var n int64
	if err := db.Model(&models.AttendanceRecord{}).
		Where("member_id = ? AND date = ?", memberID, event.Date).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	rec := models.AttendanceRecord{
		MemberID: memberID,
		EventID:  &event.ID,
		Date:     event.Date,
		Status:   models.AttendancePending,
	}
	if err := db.Create(&rec).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GeneratePendingForEvent creates attendance rows for every obligated member
// when a rehearsal is scheduled. Non-rehearsal events and rehearsals dated in
// the past generate nothing.
func GeneratePendingForEvent(db *gorm.DB, event *models.Event) (Report, error) {
	var rep Report
	if event.Type != models.EventRehearsal || event.Date < Today() {
		return rep, nil
	}

	var members []models.Member
	if err := db.Where("active = ? AND frozen = ?", true, false).Find(&members).Error; err != nil {
		return rep, err
	}

	for _, m := range members {
		created, err := CreatePendingRecord(db, m.ID, event)
		switch {
		case err != nil:
			rep.Failed++
			logrus.WithFields(logrus.Fields{
				"job": "generate-attendance", "member_id": m.ID, "event_id": event.ID,
			}).WithError(err).Warn("row failed")
		case created:
			rep.Created++
		default:
			rep.Skipped++
		}
	}

	logrus.WithFields(logrus.Fields{
		"job": "generate-attendance", "event_id": event.ID, "date": event.Date,
		"created": rep.Created, "skipped": rep.Skipped, "failed": rep.Failed,
	}).Info("event generation done")
	return rep, nil
}

// GeneratePendingForMember creates attendance rows for every future rehearsal
// when a member registers. Past rehearsals are left alone.
func GeneratePendingForMember(db *gorm.DB, member *models.Member) (Report, error) {
	var rep Report
	if !member.Obligated() {
		return rep, nil
	}

	var events []models.Event
	if err := db.Where("type = ? AND date >= ?", models.EventRehearsal, Today()).
		Find(&events).Error; err != nil {
		return rep, err
	}

	for i := range events {
		created, err := CreatePendingRecord(db, member.ID, &events[i])
		switch {
		case err != nil:
			rep.Failed++
			logrus.WithFields(logrus.Fields{
				"job": "generate-attendance", "member_id": member.ID, "event_id": events[i].ID,
			}).WithError(err).Warn("row failed")
		case created:
			rep.Created++
		default:
			rep.Skipped++
		}
	}

	logrus.WithFields(logrus.Fields{
		"job": "generate-attendance", "member_id": member.ID,
		"created": rep.Created, "skipped": rep.Skipped, "failed": rep.Failed,
	}).Info("member generation done")
	return rep, nil
}

// DeleteForEventDate bulk-deletes attendance rows sharing a deleted event's
// date. Rows are matched by the denormalized date, not the event link, so
// unlinked rows from the same rehearsal go too.
func DeleteForEventDate(db *gorm.DB, date string) (int64, error) {
	res := db.Where("date = ?", date).Delete(&models.AttendanceRecord{})
	return res.RowsAffected, res.Error
}

// EnsureMonthlyFees creates an unpaid fee row for every obligated, non-conductor
// member for the given period. Idempotent: the unique index on
// (member_id, year, month) is the authoritative guard and conflicts count as
// skips, so re-running a partially failed pass is safe.
func EnsureMonthlyFees(db *gorm.DB, year, month int) (Report, error) {
	var rep Report
	if month < 1 || month > 12 {
		return rep, ErrValidation
	}

	var members []models.Member
	if err := db.Where("active = ? AND frozen = ? AND role <> ?", true, false, models.RoleConductor).
		Find(&members).Error; err != nil {
		return rep, err
	}

	for _, m := range members {
		var n int64
		if err := db.Model(&models.FeeRecord{}).
			Where("member_id = ? AND year = ? AND month = ?", m.ID, year, month).
			Count(&n).Error; err != nil {
			rep.Failed++
			logrus.WithFields(logrus.Fields{"job": "generate-fees", "member_id": m.ID}).
				WithError(err).Warn("row failed")
			continue
		}
		if n > 0 {
			rep.Skipped++
			continue
		}

		fee := models.FeeRecord{MemberID: m.ID, Year: year, Month: month, Paid: false}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fee)
		switch {
		case res.Error != nil:
			rep.Failed++
			logrus.WithFields(logrus.Fields{"job": "generate-fees", "member_id": m.ID}).
				WithError(res.Error).Warn("row failed")
		case res.RowsAffected == 0:
			// lost the race to a concurrent pass
			rep.Skipped++
		default:
			rep.Created++
		}
	}

	logrus.WithFields(logrus.Fields{
		"job": "generate-fees", "year": year, "month": month,
		"created": rep.Created, "skipped": rep.Skipped, "failed": rep.Failed,
	}).Info("fee generation done")
	return rep, nil
}

// BackfillPastMonths runs EnsureMonthlyFees for the trailing monthsBack
// periods including the current one, crossing year boundaries as needed.
// Covers onboarding gaps and missed cron runs.
func BackfillPastMonths(db *gorm.DB, monthsBack int) (Report, error) {
	var rep Report
	if monthsBack < 1 {
		return rep, ErrValidation
	}

	year, month := CurrentPeriod()
	var firstErr error
	for i := monthsBack - 1; i >= 0; i-- {
		y, m := AddMonths(year, month, -i)
		r, err := EnsureMonthlyFees(db, y, m)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		rep.Created += r.Created
		rep.Skipped += r.Skipped
		rep.Failed += r.Failed
	}
	return rep, firstErr
}

// ToggleFeePaid flips the paid flag on a fee row. No cascades.
func ToggleFeePaid(db *gorm.DB, id uint, paid bool) error {
	res := db.Model(&models.FeeRecord{}).Where("id = ?", id).Update("paid", paid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
