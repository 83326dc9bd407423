package ledger

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/models"
)

// newTestDB opens a private in-memory database per test. The named shared
// cache keeps gorm's pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name, role string, active, frozen bool) models.Member {
	t.Helper()
	m := models.Member{Name: name, Role: role, Part: models.PartTenor, Active: active, Frozen: frozen}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member %s: %v", name, err)
	}
	return m
}

func seedEvent(t *testing.T, db *gorm.DB, typ, date string) models.Event {
	t.Helper()
	ev := models.Event{Title: typ + " " + date, Type: typ, Date: date}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("seed event %s: %v", date, err)
	}
	return ev
}

func seedAttendance(t *testing.T, db *gorm.DB, memberID uint, eventID *uint, date, status string) models.AttendanceRecord {
	t.Helper()
	rec := models.AttendanceRecord{MemberID: memberID, EventID: eventID, Date: date, Status: status}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
	return rec
}

func daysFromNow(n int) string {
	return time.Now().AddDate(0, 0, n).Format("2006-01-02")
}

func countRecords(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
