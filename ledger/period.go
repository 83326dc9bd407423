package ledger

import "time"

// Fee periods are stored as a numeric (year, month) pair; the Turkish month
// name is derived only at the presentation boundary. Keying rows on the
// display name would make casing a join hazard.

var monthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthName returns the display name for month 1..12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthIndex maps a period onto an absolute month count so that distances
// between periods are plain subtraction.
func MonthIndex(year, month int) int {
	return year*12 + (month - 1)
}

// AddMonths shifts a period by delta months, handling year rollover in both
// directions.
func AddMonths(year, month, delta int) (int, int) {
	idx := MonthIndex(year, month) + delta
	return idx / 12, idx%12 + 1
}

// CurrentPeriod returns today's (year, month).
func CurrentPeriod() (int, int) {
	now := time.Now()
	return now.Year(), int(now.Month())
}

// Today returns the current date in the ledger's YYYY-MM-DD form.
func Today() string {
	return time.Now().Format("2006-01-02")
}
