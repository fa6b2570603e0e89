package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner shows activity while a snapshot is read or written.
type Spinner struct {
	ui    *UI
	label string
	done  chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	started  bool
	finished bool
}

// Spinner animation frames (braille pattern).
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new animated spinner.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		done:  make(chan struct{}),
	}
}

// Start begins the spinner animation. Without a terminal the label is
// printed once.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frame := 0
		spinnerStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.ui.Out, "\r%s %s...", spinnerStyle.Render(spinnerFrames[frame]), s.label)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// finish stops the animation once. It reports false if the spinner never
// started or was already finished.
func (s *Spinner) finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.finished {
		return false
	}
	s.finished = true
	close(s.done)
	s.wg.Wait()
	return true
}

// Success stops the spinner and shows a success message.
func (s *Spinner) Success(msg string) {
	if !s.finish() {
		return
	}
	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", StyleSuccess.Render(SymbolSuccess), s.label, msg)
}

// Error stops the spinner and shows an error message.
func (s *Spinner) Error(msg string) {
	if !s.finish() {
		return
	}
	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", StyleError.Render(SymbolError), s.label, StyleError.Render(msg))
}
