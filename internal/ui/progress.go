package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// minRedraw limits how often a progress bar repaints.
const minRedraw = 100 * time.Millisecond

// ProgressBar renders progress for determinate operations. Update is safe
// for concurrent use.
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int64
	current int64
	last    time.Time
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar.
func (u *UI) NewProgressBar(label string, total int64) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return &ProgressBar{ui: u, bar: bar, label: label, total: total}
}

// Update sets the current progress value.
func (p *ProgressBar) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current > p.current {
		p.current = current
	}
	if !p.ui.shouldStyle() || time.Since(p.last) < minRedraw {
		return
	}
	p.last = time.Now()

	pct := 0.0
	if p.total > 0 {
		pct = float64(p.current) / float64(p.total)
	}
	if pct > 1 {
		pct = 1
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		StyleMuted.Render(fmt.Sprintf("%d/%d", p.current, p.total)),
	)
}

// Current returns the highest value seen so far.
func (p *ProgressBar) Current() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Complete finishes the progress bar with a success indicator.
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "%s: %d/%d done\n", p.label, p.current, p.total)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d/%d complete", p.current, p.total)),
	)
}

// Fail finishes the progress bar with an error indicator.
func (p *ProgressBar) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "%s: FAILED: %v\n", p.label, err)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		labelStyle.Render(p.label),
		StyleError.Render(err.Error()),
	)
}
