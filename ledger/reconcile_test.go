package ledger

import (
	"testing"

	"github.com/emirkaya/ChoirSystem/models"
)

func TestRelinkOrphanedAttendance(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)
	ev := seedEvent(t, db, models.EventRehearsal, daysFromNow(-3))

	orphan := seedAttendance(t, db, m.ID, nil, ev.Date, models.AttendancePresent)
	linked := seedAttendance(t, db, m.ID, &ev.ID, ev.Date, models.AttendanceAbsent)
	stray := seedAttendance(t, db, m.ID, nil, daysFromNow(-99), models.AttendancePending) // no matching event

	rep, err := RelinkOrphanedAttendance(db, false)
	if err != nil {
		t.Fatalf("relink: %v", err)
	}
	if rep.Touched != 1 {
		t.Errorf("touched = %d, want 1", rep.Touched)
	}
	if rep.RunID == "" {
		t.Error("run id missing")
	}

	var got models.AttendanceRecord
	db.First(&got, orphan.ID)
	if got.EventID == nil || *got.EventID != ev.ID {
		t.Error("orphan not relinked")
	}
	db.First(&got, linked.ID)
	if got.EventID == nil || *got.EventID != ev.ID {
		t.Error("already-linked row disturbed")
	}
	db.First(&got, stray.ID)
	if got.EventID != nil {
		t.Error("dateless stray should stay unlinked")
	}

	// idempotent: second run touches nothing
	rep, err = RelinkOrphanedAttendance(db, false)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if rep.Touched != 0 {
		t.Errorf("re-run touched = %d, want 0", rep.Touched)
	}
}

func TestRelinkDryRun(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)
	ev := seedEvent(t, db, models.EventRehearsal, daysFromNow(-3))
	orphan := seedAttendance(t, db, m.ID, nil, ev.Date, models.AttendancePresent)

	rep, err := RelinkOrphanedAttendance(db, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if rep.Touched != 1 || !rep.DryRun {
		t.Errorf("report = %+v, want 1 touched dry-run", rep)
	}

	var got models.AttendanceRecord
	db.First(&got, orphan.ID)
	if got.EventID != nil {
		t.Error("dry run wrote to the database")
	}
}

func TestPurgeGhostAttendance(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)

	kept := seedAttendance(t, db, m.ID, nil, daysFromNow(-1), models.AttendancePresent)
	ghost1 := seedAttendance(t, db, m.ID+100, nil, daysFromNow(-1), models.AttendanceAbsent)
	ghost2 := seedAttendance(t, db, m.ID+101, nil, daysFromNow(-2), models.AttendancePending)

	rep, err := PurgeGhostAttendance(db, false)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if rep.Touched != 2 {
		t.Errorf("touched = %d, want 2", rep.Touched)
	}
	if len(rep.Records) != 2 {
		t.Errorf("audit records = %d, want 2", len(rep.Records))
	}
	audited := map[uint]bool{}
	for _, r := range rep.Records {
		audited[r.RecordID] = true
	}
	if !audited[ghost1.ID] || !audited[ghost2.ID] {
		t.Error("audit trail missing a deleted record")
	}

	if n := countRecords(t, db, &models.AttendanceRecord{}, ""); n != 1 {
		t.Errorf("remaining = %d, want 1", n)
	}
	var got models.AttendanceRecord
	db.First(&got)
	if got.ID != kept.ID {
		t.Error("wrong record survived the purge")
	}

	// idempotent: nothing left to purge
	rep, err = PurgeGhostAttendance(db, false)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if rep.Touched != 0 {
		t.Errorf("re-run touched = %d, want 0", rep.Touched)
	}
}

func TestPurgeGhostDryRun(t *testing.T) {
	db := newTestDB(t)
	seedMember(t, db, "Ali", models.RoleMember, true, false)
	seedAttendance(t, db, 999, nil, daysFromNow(-1), models.AttendanceAbsent)

	rep, err := PurgeGhostAttendance(db, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if rep.Touched != 1 || !rep.DryRun {
		t.Errorf("report = %+v, want 1 touched dry-run", rep)
	}
	if n := countRecords(t, db, &models.AttendanceRecord{}, ""); n != 1 {
		t.Errorf("dry run deleted rows: remaining = %d, want 1", n)
	}
}
