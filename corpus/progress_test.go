package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Observe(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10)

	for i := 1; i <= 100; i++ {
		tracker.Observe(i, 100)
	}

	output := buf.String()
	assert.Contains(t, output, "Loading: 10/100")
	assert.Contains(t, output, "100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.True(t, strings.HasSuffix(output, "\n"), "finish should print newline")
	assert.Equal(t, 1, strings.Count(output, "\n"))

	tracker.Observe(100, 100)
	assert.Equal(t, output, buf.String(), "no output after completion")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	tracker := NewProgressTracker(&bytes.Buffer{}, 0)
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_SingleItem(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 50)
	tracker.Observe(1, 1)
	assert.Contains(t, buf.String(), "1/1 (100.0%)")
}
