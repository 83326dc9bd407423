package ledger

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/emirkaya/ChoirSystem/models"
)

// AttendancePercentage computes the share of PRESENT among the member's
// decided (non-PENDING) attendance rows, rounded to the nearest integer.
// A member with nothing decided yet scores 0.
func AttendancePercentage(db *gorm.DB, memberID uint) (int, error) {
	type bucket struct {
		Status string
		N      int64
	}
	var buckets []bucket
	if err := db.Model(&models.AttendanceRecord{}).
		Select("status, COUNT(*) AS n").
		Where("member_id = ? AND status <> ?", memberID, models.AttendancePending).
		Group("status").
		Scan(&buckets).Error; err != nil {
		return 0, err
	}

	var present, total int64
	for _, b := range buckets {
		total += b.N
		if b.Status == models.AttendancePresent {
			present += b.N
		}
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(float64(present) / float64(total) * 100)), nil
}

// RepeatedAbsentees returns the obligated members (conductor excluded) who
// were ABSENT on every one of the most recent window distinct rehearsal dates
// before today. A member missing a record for even one of those dates does not
// qualify — no partial credit for gaps.
func RepeatedAbsentees(db *gorm.DB, window int) ([]models.Member, error) {
	if window < 1 {
		window = 4
	}

	var dates []string
	if err := db.Model(&models.AttendanceRecord{}).
		Distinct().
		Where("date < ?", Today()).
		Order("date DESC").
		Limit(window).
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	if len(dates) < window {
		return nil, nil
	}

	var rows []models.AttendanceRecord
	if err := db.Where("date IN ?", dates).Find(&rows).Error; err != nil {
		return nil, err
	}

	datesCovered := map[uint]map[string]bool{}
	broke := map[uint]bool{} // member had a non-ABSENT row in the window
	for _, r := range rows {
		if !strings.EqualFold(r.Status, models.AttendanceAbsent) {
			broke[r.MemberID] = true
			continue
		}
		if datesCovered[r.MemberID] == nil {
			datesCovered[r.MemberID] = map[string]bool{}
		}
		datesCovered[r.MemberID][r.Date] = true
	}

	ids := make([]uint, 0, len(datesCovered))
	for id, covered := range datesCovered {
		if !broke[id] && len(covered) == window {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var out []models.Member
	if err := db.Where("id IN ? AND active = ? AND frozen = ? AND role <> ?",
		ids, true, false, models.RoleConductor).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// OverdueMember is one dashboard row from the overdue-fee scan.
type OverdueMember struct {
	Member        models.Member `json:"member"`
	OldestYear    int           `json:"oldest_year"`
	OldestMonth   int           `json:"oldest_month"`
	OldestPeriod  string        `json:"oldest_period"` // display form, e.g. "Eylül 2024"
	MonthsOverdue int           `json:"months_overdue"`
	UnpaidCount   int           `json:"unpaid_count"`
}

// OverdueFeePayers flags members with at least one unpaid fee row aged
// threshold months or more. Deliberately not a contiguous-streak rule: one
// old missed month flags a member whose later months are all paid.
func OverdueFeePayers(db *gorm.DB, threshold int) ([]OverdueMember, error) {
	if threshold < 1 {
		threshold = 2
	}
	nowIdx := MonthIndex(CurrentPeriod())

	var fees []models.FeeRecord
	if err := db.Where("paid = ?", false).Order("year ASC, month ASC").Find(&fees).Error; err != nil {
		return nil, err
	}

	type acc struct {
		oldestIdx int
		oldest    models.FeeRecord
		unpaid    int
		flagged   bool
	}
	byMember := map[uint]*acc{}
	for _, f := range fees {
		a := byMember[f.MemberID]
		if a == nil {
			a = &acc{oldestIdx: math.MaxInt}
			byMember[f.MemberID] = a
		}
		a.unpaid++
		idx := MonthIndex(f.Year, f.Month)
		if idx < a.oldestIdx {
			a.oldestIdx = idx
			a.oldest = f
		}
		if nowIdx-idx >= threshold {
			a.flagged = true
		}
	}

	ids := make([]uint, 0, len(byMember))
	for id, a := range byMember {
		if a.flagged {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var members []models.Member
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	out := make([]OverdueMember, 0, len(members))
	for _, m := range members {
		a := byMember[m.ID]
		out = append(out, OverdueMember{
			Member:        m,
			OldestYear:    a.oldest.Year,
			OldestMonth:   a.oldest.Month,
			OldestPeriod:  MonthName(a.oldest.Month) + " " + strconv.Itoa(a.oldest.Year),
			MonthsOverdue: nowIdx - a.oldestIdx,
			UnpaidCount:   a.unpaid,
		})
	}
	return out, nil
}
