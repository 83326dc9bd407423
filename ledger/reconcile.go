package ledger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/emirkaya/ChoirSystem/models"
)

// TouchedRecord identifies one row a reconciliation pass changed (or would
// change, under dry-run).
type TouchedRecord struct {
	RecordID uint   `json:"record_id"`
	MemberID uint   `json:"member_id"`
	Date     string `json:"date"`
	EventID  *uint  `json:"event_id,omitempty"`
}

// ReconcileReport is the audit record of one reconciliation run. Purge runs
// keep the full per-row list because deletion is irreversible.
type ReconcileReport struct {
	RunID   string          `json:"run_id"`
	Job     string          `json:"job"`
	DryRun  bool            `json:"dry_run"`
	Touched int             `json:"touched"`
	Failed  int             `json:"failed"`
	Records []TouchedRecord `json:"records"`
}

// RelinkOrphanedAttendance sets the event reference on attendance rows whose
// date matches an event but whose link is unset. Matching is by date only:
// two events on the same date are indistinguishable here, the first by id
// wins and the ambiguity is logged. Idempotent — a second run with no new
// drift touches nothing.
func RelinkOrphanedAttendance(db *gorm.DB, dryRun bool) (ReconcileReport, error) {
	rep := ReconcileReport{RunID: uuid.NewString(), Job: "relink-orphans", DryRun: dryRun}
	log := logrus.WithFields(logrus.Fields{"job": rep.Job, "run_id": rep.RunID, "dry_run": dryRun})

	var events []models.Event
	if err := db.Order("id ASC").Find(&events).Error; err != nil {
		return rep, err
	}

	seen := map[string]bool{}
	for i := range events {
		ev := &events[i]
		if seen[ev.Date] {
			log.WithField("date", ev.Date).Warn("multiple events share a date; earlier id keeps the matches")
			continue
		}
		seen[ev.Date] = true

		var orphans []models.AttendanceRecord
		if err := db.Where("date = ? AND event_id IS NULL", ev.Date).Find(&orphans).Error; err != nil {
			rep.Failed++
			log.WithField("date", ev.Date).WithError(err).Warn("lookup failed")
			continue
		}

		for _, o := range orphans {
			if !dryRun {
				if err := db.Model(&models.AttendanceRecord{}).Where("id = ?", o.ID).
					Update("event_id", ev.ID).Error; err != nil {
					rep.Failed++
					log.WithField("record_id", o.ID).WithError(err).Warn("relink failed")
					continue
				}
			}
			rep.Touched++
			rep.Records = append(rep.Records, TouchedRecord{
				RecordID: o.ID, MemberID: o.MemberID, Date: o.Date, EventID: &ev.ID,
			})
		}
	}

	log.WithFields(logrus.Fields{"touched": rep.Touched, "failed": rep.Failed}).Info("relink done")
	return rep, nil
}

// PurgeGhostAttendance deletes attendance rows whose member no longer exists
// in the roster. This is the only deletion path outside event deletion and it
// is irreversible, so every deleted row lands in the report and the log.
// Never scheduled; operator-invoked only.
func PurgeGhostAttendance(db *gorm.DB, dryRun bool) (ReconcileReport, error) {
	rep := ReconcileReport{RunID: uuid.NewString(), Job: "purge-ghosts", DryRun: dryRun}
	log := logrus.WithFields(logrus.Fields{"job": rep.Job, "run_id": rep.RunID, "dry_run": dryRun})

	var ghosts []models.AttendanceRecord
	if err := db.Where("member_id NOT IN (?)",
		db.Model(&models.Member{}).Select("id"),
	).Find(&ghosts).Error; err != nil {
		return rep, err
	}

	for _, g := range ghosts {
		if !dryRun {
			if err := db.Delete(&models.AttendanceRecord{}, g.ID).Error; err != nil {
				rep.Failed++
				log.WithField("record_id", g.ID).WithError(err).Warn("delete failed")
				continue
			}
		}
		rep.Touched++
		rep.Records = append(rep.Records, TouchedRecord{
			RecordID: g.ID, MemberID: g.MemberID, Date: g.Date, EventID: g.EventID,
		})
		log.WithFields(logrus.Fields{
			"record_id": g.ID, "member_id": g.MemberID, "date": g.Date,
		}).Info("ghost record purged")
	}

	log.WithFields(logrus.Fields{"touched": rep.Touched, "failed": rep.Failed}).Info("purge done")
	return rep, nil
}
