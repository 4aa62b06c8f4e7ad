package scheduling

import "time"

// IsWorkingDay reports whether the date's weekday is in the doctor's working
// day set. Working days are stored as English weekday names ("Monday").
func IsWorkingDay(workingDays []string, date time.Time) bool {
	day := date.Weekday().String()
	for _, d := range workingDays {
		if d == day {
			return true
		}
	}
	return false
}

// AvailableNow reports whether a doctor is currently taking walk-ins: today
// is a working day and the current wall-clock time is within [from, to],
// inclusive on both ends. Zero-padded HH:MM strings compare correctly
// lexicographically.
func AvailableNow(workingDays []string, from, to string, now time.Time) bool {
	if from == "" || to == "" || !IsWorkingDay(workingDays, now) {
		return false
	}
	clock := now.Format("15:04")
	return clock >= from && clock <= to
}
