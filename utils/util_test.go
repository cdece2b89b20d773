package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCSVPath(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n"), 0o644))

	assert.NoError(t, ValidateCSVPath(csvPath))
	assert.Error(t, ValidateCSVPath(filepath.Join(dir, "data.txt")))
	assert.Error(t, ValidateCSVPath(filepath.Join(dir, "missing.csv")))
	assert.Error(t, ValidateCSVPath(dir))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	night := time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(morning, nextDay))
	assert.False(t, SameDay(time.Time{}, time.Time{}), "missing values never compare equal")
	assert.False(t, SameDay(morning, time.Time{}))
}
