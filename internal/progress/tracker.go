// Package progress renders a per-table row progress bar during export.
package progress

import (
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Tracker tracks rows dumped for one table.
type Tracker struct {
	bar     *progressbar.ProgressBar
	current atomic.Int64
}

// New creates a tracker for a table with a known row count. A disabled
// tracker counts rows but draws nothing.
func New(table string, total int64, enabled bool) *Tracker {
	t := &Tracker{}
	if !enabled {
		return t
	}
	t.bar = progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("Dumping "+table),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionClearOnFinish(),
	)
	return t
}

// Add increments the row counter.
func (t *Tracker) Add(n int64) {
	t.current.Add(n)
	if t.bar != nil {
		t.bar.Add64(n)
	}
}

// Current returns the rows counted so far.
func (t *Tracker) Current() int64 {
	return t.current.Load()
}

// Finish clears the bar.
func (t *Tracker) Finish() {
	if t.bar != nil {
		t.bar.Finish()
	}
}
