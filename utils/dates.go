// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the start of the day N days before now.
func DaysAgo(days int) time.Time {
	return BeginningOfDay(time.Now().AddDate(0, 0, -days))
}
