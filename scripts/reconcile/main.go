// Operator batch tool for the ledger repair and backfill jobs.
//
// Usage:
//
//	reconcile -job relink [-dry-run]
//	reconcile -job purge-ghosts [-dry-run]
//	reconcile -job backfill-fees [-months 6]
//
// Every job is idempotent; purge-ghosts is destructive, run it with -dry-run
// first and read the report.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/emirkaya/ChoirSystem/config"
	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
)

func main() {
	job := flag.String("job", "", "relink | purge-ghosts | backfill-fees")
	dryRun := flag.Bool("dry-run", false, "report without writing")
	months := flag.Int("months", 6, "trailing months for backfill-fees")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	database.Connect(cfg)

	var (
		out any
		err error
	)
	switch *job {
	case "relink":
		out, err = ledger.RelinkOrphanedAttendance(database.DB, *dryRun)
	case "purge-ghosts":
		out, err = ledger.PurgeGhostAttendance(database.DB, *dryRun)
	case "backfill-fees":
		out, err = ledger.BackfillPastMonths(database.DB, *months)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logrus.WithField("job", *job).WithError(err).Fatal("job failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
