package planning

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity time point (cycle boundaries are whole days)
// =============================================================================

type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO date (2006-01-02). Zero Date on failure.
func ParseDate(s string) Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// DATE RANGES
// =============================================================================

// DateRange is an inclusive [Start, End] range.
type DateRange struct {
	Start Date
	End   Date
}

// Contains returns true if the date falls within the range [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// ContainsRange returns true if other lies entirely within this range.
func (r DateRange) ContainsRange(other DateRange) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// WeeksBetween returns the range length in whole weeks, counting the end day
// and rounding up. A 13-week quarter (Jan 1 - Mar 31) reports 13.
func WeeksBetween(from, to Date) int {
	days := DaysBetween(from, to) + 1
	if days <= 0 {
		return 0
	}
	weeks := days / 7
	if days%7 != 0 {
		weeks++
	}
	return weeks
}
