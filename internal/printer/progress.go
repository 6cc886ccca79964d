package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/slok/wellhub/internal/model"
)

const progressBarWidth = 20

// RunProgress draws the progress of one or more tool runs on a single
// terminal line.
type RunProgress struct {
	w        io.Writer
	mu       sync.Mutex
	progress map[string]int
}

// NewRunProgress creates a new run progress drawer.
func NewRunProgress(w io.Writer) *RunProgress {
	return &RunProgress{w: w, progress: map[string]int{}}
}

// Update records the run progress and redraws the line.
func (p *RunProgress) Update(run model.TaskRun) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.progress[run.TaskID] = run.ProgressPercent
	p.draw()
}

// Finish ends the progress line.
func (p *RunProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}

func (p *RunProgress) draw() {
	ids := make([]string, 0, len(p.progress))
	for id := range p.progress {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s [%s] %3d%%", id, ProgressBar(p.progress[id], progressBarWidth), p.progress[id]))
	}
	fmt.Fprintf(p.w, "\r  %s", strings.Join(parts, "  "))
}

// ProgressBar renders a percentage as a fixed width bar.
func ProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return strings.Repeat("=", filled) + strings.Repeat(" ", width-filled)
}
