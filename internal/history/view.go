// ABOUTME: History view listing persisted BMI measurements, newest first.
// ABOUTME: Loads on mount, refreshes after each append, and renders one line per record.
package history

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/storage"
)

// Heading is printed above the history lines.
const Heading = "BMI History"

// Lister is the slice of the async store the view reads from.
type Lister interface {
	ListAll(ctx context.Context) *storage.Future[[]models.Measurement]
}

// View holds the most recently loaded history snapshot.
type View struct {
	src   Lister
	limit int

	mu     sync.RWMutex
	items  []models.Measurement
	loaded bool
}

// Option configures a View.
type Option func(*View)

// Limit caps the number of records kept after each load. n <= 0 means no cap.
func Limit(n int) Option {
	return func(v *View) { v.limit = n }
}

// New creates a View that has not loaded yet.
func New(src Lister, opts ...Option) *View {
	v := &View{src: src}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load queries the full history. Called once when the view is mounted.
func (v *View) Load(ctx context.Context) error {
	items, err := v.src.ListAll(ctx).Wait(ctx)
	if err != nil {
		return err
	}
	if v.limit > 0 && len(items) > v.limit {
		items = items[:v.limit]
	}

	v.mu.Lock()
	v.items = items
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// Refresh re-queries the history after an append.
func (v *View) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// Loaded reports whether at least one load has completed.
func (v *View) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Items returns a copy of the loaded records.
func (v *View) Items() []models.Measurement {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.Measurement, len(v.items))
	copy(out, v.items)
	return out
}

// Lines formats each loaded record for display.
func (v *View) Lines() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	lines := make([]string, 0, len(v.items))
	for _, m := range v.items {
		lines = append(lines, FormatLine(m))
	}
	return lines
}

// Render writes the heading and one line per record to w.
func (v *View) Render(w io.Writer) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintln(w, Heading); err != nil {
		return err
	}
	for _, line := range v.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatLine renders m as "2026-10-14: 22.7 Healthy (W:154 H:69)".
// The date is the local calendar day of the recording.
func FormatLine(m models.Measurement) string {
	return fmt.Sprintf("%s: %s %s (W:%s H:%s)",
		m.RecordedAt.Local().Format("2006-01-02"),
		models.FormatBMI(m.BMI),
		m.Category,
		models.FormatNumber(m.Weight),
		models.FormatNumber(m.Height))
}
