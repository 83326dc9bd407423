package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/emirkaya/ChoirSystem/ledger"
)

// First of the month, 03:00 server time.
const defaultFeeSchedule = "0 3 1 * *"

// StartFeeCron schedules the monthly fee-generation pass. The pass is
// idempotent, so a missed or doubled run is harmless; gaps are closed by the
// backfill job.
func StartFeeCron(db *gorm.DB, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = defaultFeeSchedule
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		year, month := ledger.CurrentPeriod()
		rep, err := ledger.EnsureMonthlyFees(db, year, month)
		if err != nil {
			logrus.WithFields(logrus.Fields{"job": "fee-cron", "year": year, "month": month}).
				WithError(err).Error("monthly fee pass failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"job": "fee-cron", "year": year, "month": month,
			"created": rep.Created, "skipped": rep.Skipped, "failed": rep.Failed,
		}).Info("monthly fee pass done")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logrus.WithField("schedule", schedule).Info("fee cron started")
	return c, nil
}
