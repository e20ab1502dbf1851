package utils

import "time"

// Calendar dates are stored as YYYY-MM-DD strings so range filters reduce to
// lexical comparison.
const DateLayout = "2006-01-02"

func Today() string {
	return time.Now().Format(DateLayout)
}

func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(DateLayout)
}

// MonthsBack returns the YYYY-MM label of the month n months before the
// first of the current month. Used by dashboard activity series.
func MonthsBack(n int) string {
	first := time.Now()
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())
	return first.AddDate(0, -n, 0).Format("2006-01")
}
