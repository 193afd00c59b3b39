package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	tracker.Start("rights", 4)
	tracker.Increment(2)
	assert.Contains(t, buf.String(), "Importing rights: 2/4 (50.0%)")

	tracker.Increment(10)
	assert.Equal(t, 4, tracker.Current())
	assert.Contains(t, buf.String(), "4/4 (100.0%)")

	tracker.Finish()
	assert.Contains(t, buf.String(), "done in")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	tracker.Start("templates", 0)
	tracker.Finish()
	assert.Contains(t, buf.String(), "0/0 (100.0%)")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	tracker.Increment(3)
	tracker.Finish()
	assert.Empty(t, buf.String())
}

func TestProgressTracker_NilWriter(t *testing.T) {
	tracker := NewProgressTracker(nil)
	tracker.Start("rights", 2)
	tracker.Increment(1)
	tracker.Finish()
	assert.Equal(t, 1, tracker.Current())
}
