package corpus

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports loader progress to a writer.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	finished       bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N items
func NewProgressTracker(writer io.Writer, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Observe is a ProgressFunc. The first call starts the clock and the call
// that reaches total prints the final line.
func (p *ProgressTracker) Observe(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	if !p.started {
		p.startTime = time.Now()
		p.started = true
	}
	p.total = total
	p.current = min(completed, total)

	if p.current >= p.total {
		p.report()
		fmt.Fprintln(p.writer)
		p.finished = true
		return
	}
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Elapsed returns the time elapsed since the first observation.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rLoading: %d/%d (%.1f%%) - %.1f documents/s",
		p.current, p.total, percentage, rate)
}
