package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time expressed in fractional hours, "10:30" being 10.5.
type TimeOfDay float64

// Hour returns the whole hour the time falls in.
func (t TimeOfDay) Hour() int {
	return int(math.Floor(float64(t)))
}

// String renders the value back as HH:MM.
func (t TimeOfDay) String() string {
	minutes := int(math.Round(float64(t) * 60))
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MalformedTimeError reports an "HH:MM" value that could not be parsed.
type MalformedTimeError struct {
	Value  string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed time %q: %s", e.Value, e.Reason)
}

// ParseTimeOfDay parses "HH:MM" into fractional hours within [0, 24).
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, &MalformedTimeError{Value: value, Reason: "expected HH:MM"}
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &MalformedTimeError{Value: value, Reason: "hours are not numeric"}
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &MalformedTimeError{Value: value, Reason: "minutes are not numeric"}
	}
	if hours < 0 || hours > 23 {
		return 0, &MalformedTimeError{Value: value, Reason: "hours out of range"}
	}
	if minutes < 0 || minutes > 59 {
		return 0, &MalformedTimeError{Value: value, Reason: "minutes out of range"}
	}
	return TimeOfDay(float64(hours) + float64(minutes)/60), nil
}
