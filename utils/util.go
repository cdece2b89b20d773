package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ValidateCSVPath checks that path points at a readable .csv file.
func ValidateCSVPath(path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return fmt.Errorf("%s is not a csv file", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// SameDay reports whether a and b fall on the same calendar date,
// ignoring time of day. A zero time on either side never compares equal:
// it stands for a value that could not be parsed.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
