package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime is returned when a capture time cannot be parsed.
var ErrInvalidTime = fmt.Errorf("invalid capture time, expected HH:MM")

// Schedule is a recurring daily wall-clock target. Only the time of day
// is stored; the concrete next instant is always resolved against a
// given "now" (today if the instant is still ahead, otherwise the same
// time tomorrow).
type Schedule struct {
	Hour   int
	Minute int
}

// Parse reads a "HH:MM" value. Single-digit components are accepted
// (the settings UI of older clients stored times like "9:5").
func Parse(value string) (Schedule, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return Schedule{Hour: hour, Minute: minute}, nil
}

func (s Schedule) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// NextOccurrence returns the next instant at or after now whose time of
// day matches the schedule, to the second.
func (s Schedule) NextOccurrence(now time.Time) time.Time {
	now = now.Truncate(time.Second)
	target := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// SecondsUntil returns the whole seconds until the next occurrence of
// the schedule. The result is never negative; zero means due now.
func (s Schedule) SecondsUntil(now time.Time) int {
	now = now.Truncate(time.Second)
	return int(s.NextOccurrence(now).Sub(now) / time.Second)
}

// FormatRemaining renders a seconds count as the countdown phrase shown
// to observers.
func FormatRemaining(seconds int) string {
	switch {
	case seconds >= 7200:
		return fmt.Sprintf("in %d hours", seconds/3600)
	case seconds >= 3600:
		return "in 1 hour"
	case seconds >= 120:
		return fmt.Sprintf("in %d minutes", seconds/60)
	case seconds >= 60:
		return "in 1 minute"
	case seconds >= 2:
		return fmt.Sprintf("in %d seconds", seconds)
	case seconds == 1:
		return "in 1 second"
	default:
		return "now"
	}
}
