package model

import "time"

// MonthComparison is the result of comparing two calendar months.
// PercentChange is nil when the first month's total is zero: the ratio is
// undefined, not an error and not infinity.
type MonthComparison struct {
	Month1        string   `json:"month1"` // YYYY-MM
	Month1Total   Cents    `json:"month1_total"`
	Month2        string   `json:"month2"`
	Month2Total   Cents    `json:"month2_total"`
	PercentChange *float64 `json:"percent_change"`
}

// KeyIndicators summarizes a filtered period. An empty result set yields
// explicit zeros; callers cannot distinguish that from a period that truly
// sums to zero, which is why these are defaults rather than errors.
type KeyIndicators struct {
	AveragePerDay float64 `json:"average_per_day"`
	Max           Cents   `json:"max"`
	Min           Cents   `json:"min"`
}

// CategoryTotal is one bar of the per-category chart.
type CategoryTotal struct {
	Name  string
	Total Cents
}

// MonthRange returns the first and last calendar day of the month containing
// t, both at UTC midnight. Works for 28..31 day months.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
