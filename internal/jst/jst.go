// Package jst normalizes instants to the fixed UTC+9 civil calendar.
//
// Every calendar bucketing and record key in the journal is derived from the
// JST civil date of an instant. JST has no daylight-saving rules, so the
// conversion is a fixed 9-hour shift. Date keys use the canonical YYYY-MM-DD
// form, for which lexicographic comparison is equivalent to chronological
// comparison.
package jst

import (
	"fmt"
	"time"
)

// Offset is the fixed UTC offset of the journal's civil calendar.
const Offset = 9 * time.Hour

// Zone is the fixed-offset location used for all civil-date conversions.
var Zone = time.FixedZone("JST", int(Offset/time.Second))

// CivilDate is a year/month/day triple under the fixed UTC+9 offset.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ToCivilDate converts an instant to its JST civil date.
// Two instants on the same JST calendar day map to the same CivilDate
// regardless of their UTC representation.
func ToCivilDate(t time.Time) CivilDate {
	y, m, d := t.In(Zone).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// Key returns the canonical YYYY-MM-DD form of the civil date.
func (d CivilDate) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateKey returns the canonical date key for an instant's JST civil date.
// This string is the sole identity of a journal entry and is safe to compare
// lexicographically for chronological ordering.
func DateKey(t time.Time) string {
	return ToCivilDate(t).Key()
}

// MonthKey returns the YYYY-MM month bucket of an instant's JST civil date.
func MonthKey(t time.Time) string {
	d := ToCivilDate(t)
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// ParseKey parses a canonical YYYY-MM-DD date key back into a CivilDate.
func ParseKey(key string) (CivilDate, error) {
	t, err := time.ParseInLocation("2006-01-02", key, Zone)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return ToCivilDate(t), nil
}

// Timestamp returns the current time in JST civil form, RFC 3339 encoded.
// Persisted updatedAt fields use this format.
func Timestamp() string {
	return time.Now().In(Zone).Format(time.RFC3339)
}

// MonthRange returns the inclusive first/last date keys of a civil month.
func MonthRange(year int, month time.Month) (start, end string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, Zone)
	last := first.AddDate(0, 1, -1)
	return DateKey(first), DateKey(last)
}

// YearRange returns the inclusive first/last date keys of a calendar year.
func YearRange(year int) (start, end string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// PrevMonth returns the year/month immediately before the given civil month.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
