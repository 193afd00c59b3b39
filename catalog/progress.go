package catalog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports import progress to a writer, one line per phase.
// A nil writer disables output.
type ProgressTracker struct {
	writer    io.Writer
	label     string
	total     int
	current   int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

// NewProgressTracker creates a tracker writing to writer.
func NewProgressTracker(writer io.Writer) *ProgressTracker {
	return &ProgressTracker{writer: writer}
}

// Start begins a phase of total items.
func (p *ProgressTracker) Start(label string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = label
	p.total = total
	p.current = 0
	p.startTime = time.Now()
	p.started = true
	p.report()
}

// Increment records delta more items as done.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.current = min(p.current+delta, p.total)
	p.report()
}

// Finish ends the current phase.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.started = false
	if p.writer != nil {
		fmt.Fprintf(p.writer, " done in %s\n", time.Since(p.startTime).Round(time.Millisecond))
	}
}

// Current returns the number of items done in the current phase.
func (p *ProgressTracker) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	if p.writer == nil {
		return
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rImporting %s: %d/%d (%.1f%%)", p.label, p.current, p.total, percentage)
}
