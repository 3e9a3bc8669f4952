package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter renders extraction progress as a terminal bar. The bar
// is created lazily on the first step because the total is not known until
// discovery finishes.
type ProgressReporter struct {
	description string
	bar         *progressbar.ProgressBar
	done        int
}

// NewProgressReporter creates a reporter with the given bar description.
func NewProgressReporter(description string) *ProgressReporter {
	return &ProgressReporter{description: description}
}

// Step advances the bar to done out of total.
func (p *ProgressReporter) Step(done, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(p.description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}
	if delta := done - p.done; delta > 0 {
		p.bar.Add(delta)
		p.done = done
	}
}

// Finish completes the bar if it was ever started.
func (p *ProgressReporter) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
