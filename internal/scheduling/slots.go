package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidWindow is returned when a working window or slot duration cannot
// produce slots (bad HH:MM, start not before end, non-positive duration).
var ErrInvalidWindow = errors.New("invalid working window configuration")

// ErrSlotTaken signals a booking collision with an existing appointment.
var ErrSlotTaken = errors.New("time slot is already booked")

// Slot is one bookable time window offered to a patient. Available reflects
// point-in-time occupancy only: a slot is taken when a booked appointment
// starts at exactly that hour and minute. The authoritative booking gate is
// HasConflict, which checks the full interval.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidWindow, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidWindow, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidWindow, s)
	}
	return h*60 + m, nil
}

// GenerateSlots produces the ordered slot list for one working day. The
// window is half-open: a slot starting exactly at workEnd is excluded. The
// function is pure; identical inputs always yield identical output.
func GenerateSlots(workStart, workEnd string, slotMinutes int, booked []time.Time) ([]Slot, error) {
	start, err := parseClock(workStart)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(workEnd)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidWindow, workStart, workEnd)
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive", ErrInvalidWindow)
	}

	occupied := make(map[int]struct{}, len(booked))
	for _, t := range booked {
		occupied[t.Hour()*60+t.Minute()] = struct{}{}
	}

	slots := make([]Slot, 0, (end-start)/slotMinutes+1)
	for cur := start; cur < end; cur += slotMinutes {
		_, taken := occupied[cur]
		slots = append(slots, Slot{
			Time:      fmt.Sprintf("%02d:%02d", cur/60, cur%60),
			Available: !taken,
		})
	}
	return slots, nil
}

// HasConflict reports whether any existing appointment start falls inside the
// half-open interval [start, start+duration). Callers must pass only starts
// of non-cancelled appointments for the same doctor.
func HasConflict(start time.Time, durationMinutes int, existing []time.Time) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, t := range existing {
		if !t.Before(start) && t.Before(end) {
			return true
		}
	}
	return false
}
