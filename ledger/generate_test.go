package ledger

import (
	"testing"

	"github.com/emirkaya/ChoirSystem/models"
)

func TestCreatePendingRecordIdempotent(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)
	ev := seedEvent(t, db, models.EventRehearsal, daysFromNow(3))

	created, err := CreatePendingRecord(db, m.ID, &ev)
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	created, err = CreatePendingRecord(db, m.ID, &ev)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Error("second call should be a no-op")
	}
	if n := countRecords(t, db, &models.AttendanceRecord{}, "member_id = ?", m.ID); n != 1 {
		t.Errorf("record count = %d, want 1", n)
	}

	var rec models.AttendanceRecord
	db.First(&rec, "member_id = ?", m.ID)
	if rec.Status != models.AttendancePending {
		t.Errorf("status = %s, want PENDING", rec.Status)
	}
	if rec.Date != ev.Date {
		t.Errorf("date = %s, want %s (copied from event)", rec.Date, ev.Date)
	}
	if rec.EventID == nil || *rec.EventID != ev.ID {
		t.Error("event link not set")
	}
}

func TestGeneratePendingForEvent(t *testing.T) {
	db := newTestDB(t)
	active := seedMember(t, db, "Ali", models.RoleMember, true, false)
	seedMember(t, db, "Veli (frozen)", models.RoleMember, true, true)
	seedMember(t, db, "Cem (inactive)", models.RoleMember, false, false)
	conductor := seedMember(t, db, "Şef", models.RoleConductor, true, false)

	ev := seedEvent(t, db, models.EventRehearsal, daysFromNow(5))
	rep, err := GeneratePendingForEvent(db, &ev)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// active member and conductor are obligated to attend; frozen and
	// inactive are not
	if rep.Created != 2 {
		t.Errorf("created = %d, want 2", rep.Created)
	}
	for _, id := range []uint{active.ID, conductor.ID} {
		if n := countRecords(t, db, &models.AttendanceRecord{}, "member_id = ?", id); n != 1 {
			t.Errorf("member %d record count = %d, want 1", id, n)
		}
	}

	// re-run: everything skipped
	rep, err = GeneratePendingForEvent(db, &ev)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if rep.Created != 0 || rep.Skipped != 2 {
		t.Errorf("re-run report = %+v, want 0 created / 2 skipped", rep)
	}

	// concerts generate nothing
	concert := seedEvent(t, db, models.EventConcert, daysFromNow(6))
	rep, _ = GeneratePendingForEvent(db, &concert)
	if rep.Created != 0 {
		t.Errorf("concert created %d rows", rep.Created)
	}
}

func TestGeneratePendingForMember(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, models.EventRehearsal, daysFromNow(-7)) // past, ignored
	future1 := seedEvent(t, db, models.EventRehearsal, daysFromNow(2))
	future2 := seedEvent(t, db, models.EventRehearsal, daysFromNow(9))
	seedEvent(t, db, models.EventConcert, daysFromNow(4)) // not a rehearsal

	m := seedMember(t, db, "Elif", models.RoleMember, true, false)
	rep, err := GeneratePendingForMember(db, &m)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rep.Created != 2 {
		t.Errorf("created = %d, want 2", rep.Created)
	}
	for _, date := range []string{future1.Date, future2.Date} {
		if n := countRecords(t, db, &models.AttendanceRecord{}, "member_id = ? AND date = ?", m.ID, date); n != 1 {
			t.Errorf("no record for %s", date)
		}
	}

	frozen := seedMember(t, db, "Deniz", models.RoleMember, true, true)
	rep, err = GeneratePendingForMember(db, &frozen)
	if err != nil {
		t.Fatalf("frozen: %v", err)
	}
	if rep.Created != 0 {
		t.Errorf("frozen member got %d rows", rep.Created)
	}
}

func TestDeleteForEventDate(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)
	ev := seedEvent(t, db, models.EventRehearsal, daysFromNow(1))

	seedAttendance(t, db, m.ID, &ev.ID, ev.Date, models.AttendancePending)
	seedAttendance(t, db, m.ID, nil, ev.Date, models.AttendancePending) // unlinked duplicate
	other := seedAttendance(t, db, m.ID, nil, daysFromNow(8), models.AttendancePending)

	n, err := DeleteForEventDate(db, ev.Date)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2 (linked and unlinked)", n)
	}
	if cnt := countRecords(t, db, &models.AttendanceRecord{}, ""); cnt != 1 {
		t.Errorf("remaining = %d, want 1", cnt)
	}
	var left models.AttendanceRecord
	db.First(&left)
	if left.ID != other.ID {
		t.Error("wrong record survived")
	}
}

func TestEnsureMonthlyFeesIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedMember(t, db, "Ali", models.RoleMember, true, false)
	seedMember(t, db, "Elif", models.RoleMember, true, false)
	seedMember(t, db, "Şef", models.RoleConductor, true, false)
	seedMember(t, db, "Deniz", models.RoleMember, true, true)

	rep, err := EnsureMonthlyFees(db, 2025, 3)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	// conductor pays no dues; frozen member is excused
	if rep.Created != 2 {
		t.Errorf("created = %d, want 2", rep.Created)
	}

	rep, err = EnsureMonthlyFees(db, 2025, 3)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if rep.Created != 0 || rep.Skipped != 2 {
		t.Errorf("second pass report = %+v, want 0 created / 2 skipped", rep)
	}
	if n := countRecords(t, db, &models.FeeRecord{}, "year = ? AND month = ?", 2025, 3); n != 2 {
		t.Errorf("fee rows = %d, want 2", n)
	}

	var fee models.FeeRecord
	db.First(&fee)
	if fee.Paid {
		t.Error("new fee rows must start unpaid")
	}
}

func TestEnsureMonthlyFeesBadMonth(t *testing.T) {
	db := newTestDB(t)
	if _, err := EnsureMonthlyFees(db, 2025, 13); err != ErrValidation {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestBackfillPastMonths(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)

	rep, err := BackfillPastMonths(db, 6)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if rep.Created != 6 {
		t.Errorf("created = %d, want 6", rep.Created)
	}

	// exactly the six consecutive periods ending now, across any year boundary
	year, month := CurrentPeriod()
	for i := 0; i < 6; i++ {
		y, mo := AddMonths(year, month, -i)
		if n := countRecords(t, db, &models.FeeRecord{}, "member_id = ? AND year = ? AND month = ?", m.ID, y, mo); n != 1 {
			t.Errorf("period %d-%02d: rows = %d, want 1", y, mo, n)
		}
	}
	if n := countRecords(t, db, &models.FeeRecord{}, ""); n != 6 {
		t.Errorf("total rows = %d, want 6", n)
	}

	// re-run: no duplicates
	rep, err = BackfillPastMonths(db, 6)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if rep.Created != 0 || rep.Skipped != 6 {
		t.Errorf("re-run report = %+v, want 0 created / 6 skipped", rep)
	}
}

func TestToggleFeePaid(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, "Ali", models.RoleMember, true, false)
	fee := models.FeeRecord{MemberID: m.ID, Year: 2025, Month: 1}
	if err := db.Create(&fee).Error; err != nil {
		t.Fatalf("seed fee: %v", err)
	}

	if err := ToggleFeePaid(db, fee.ID, true); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	var got models.FeeRecord
	db.First(&got, fee.ID)
	if !got.Paid {
		t.Error("paid flag not set")
	}

	if err := ToggleFeePaid(db, fee.ID, false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	db.First(&got, fee.ID)
	if got.Paid {
		t.Error("paid flag not cleared")
	}

	if err := ToggleFeePaid(db, 9999, true); err != ErrNotFound {
		t.Fatalf("missing row: error = %v, want ErrNotFound", err)
	}
}
