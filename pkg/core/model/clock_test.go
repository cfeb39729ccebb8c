package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, date, start, end string) Window {
	t.Helper()
	w, err := NewWindow(date, start, end)
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	day := mustWindow(t, "2025-03-03", "09:00", "17:00")
	assert.Equal(t, 540, day.Start)
	assert.Equal(t, 1020, day.End)
	assert.False(t, day.Overnight())
	assert.Equal(t, 8.0, day.Hours())

	night := mustWindow(t, "2025-03-03", "22:00", "06:00")
	assert.True(t, night.Overnight())
	assert.Equal(t, 8.0, night.Hours())

	_, err := NewWindow("2025-03-03", "09:00", "09:00")
	assert.Error(t, err)
	_, err = NewWindow("2025-03-03", "9am", "17:00")
	assert.Error(t, err)
	_, err = NewWindow("03/03/2025", "09:00", "17:00")
	assert.Error(t, err)
}

func TestWindowOverlaps(t *testing.T) {
	morning := mustWindow(t, "2025-03-03", "08:00", "12:00")
	noon := mustWindow(t, "2025-03-03", "11:00", "13:00")
	afternoon := mustWindow(t, "2025-03-03", "12:00", "16:00")
	nextMorning := mustWindow(t, "2025-03-04", "08:00", "12:00")

	assert.True(t, morning.Overlaps(noon))
	assert.False(t, morning.Overlaps(afternoon), "touching windows do not overlap")
	assert.False(t, morning.Overlaps(nextMorning))

	night := mustWindow(t, "2025-03-03", "22:00", "06:00")
	early := mustWindow(t, "2025-03-04", "05:00", "07:00")
	late := mustWindow(t, "2025-03-04", "06:00", "10:00")
	assert.True(t, night.Overlaps(early))
	assert.True(t, early.Overlaps(night))
	assert.False(t, night.Overlaps(late))
}

func TestWindowContains(t *testing.T) {
	available := mustWindow(t, "2025-03-03", "20:00", "08:00")

	assert.True(t, available.Contains(mustWindow(t, "2025-03-03", "22:00", "06:00")))
	assert.True(t, available.Contains(mustWindow(t, "2025-03-04", "01:00", "05:00")))
	assert.False(t, available.Contains(mustWindow(t, "2025-03-04", "07:00", "09:00")))
	assert.False(t, mustWindow(t, "2025-03-03", "09:00", "17:00").Contains(available))
}
