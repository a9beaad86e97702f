package util

import (
	"strings"
	"time"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// LoadLocation resolves a configured IANA zone name. Empty and "Local" both mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(trimmed)
}
