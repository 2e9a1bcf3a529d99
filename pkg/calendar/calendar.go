package calendar

import "time"

// AdvanceOneMonth returns the date exactly one calendar month after d.
// The day of month is clamped to the last valid day of the target month
// (Jan 31 → Feb 28/29), so month-end dates roll over without spilling into
// the month after next. Total over valid dates; never errors.
func AdvanceOneMonth(d time.Time) time.Time {
	y, m := d.Year(), int(d.Month())+1
	if m > 12 {
		m = 1
		y++
	}
	day := d.Day()
	if last := daysIn(y, time.Month(m)); day > last {
		day = last
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, d.Location())
}

// daysIn returns the number of days in the given month.
// Day 0 of month+1 normalizes to the last day of month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
