// Package ui provides styled terminal output for the mockbank CLI.
// It uses the Charm.sh ecosystem for styling with automatic fallback to
// plain text for non-TTY environments.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods.
type UI struct {
	Out     io.Writer
	IsTTY   bool
	Width   int
	NoColor bool
}

// KV represents a key-value pair for summary displays.
type KV struct {
	Key   string
	Value string
}

// New creates a UI writing to stdout with TTY detection.
func New() *UI {
	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)
	width := 80
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &UI{
		Out:     os.Stdout,
		IsTTY:   isTTY,
		Width:   width,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// NewPlain creates an unstyled UI writing to w.
func NewPlain(w io.Writer) *UI {
	return &UI{Out: w, Width: 80, NoColor: true}
}

// SetNoColor disables colors and animations.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = u.NoColor || noColor
}

// shouldStyle returns true if we should use styled output.
func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// Println writes a line to the UI's output.
func (u *UI) Println(a ...any) {
	fmt.Fprintln(u.Out, a...)
}

// Header renders a bordered header box.
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("=== %s ===", title)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2)

	return style.Render(title)
}

// KeyValue renders a styled key-value pair.
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("%-14s %s", key+":", value)
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(16)
	return "  " + keyStyle.Render(key) + " " + lipgloss.NewStyle().Bold(true).Render(value)
}

// Success renders a success message with a green checkmark.
func (u *UI) Success(msg string) string {
	if !u.shouldStyle() {
		return "[OK] " + msg
	}
	return StyleSuccess.Render(SymbolSuccess+" ") + msg
}

// Error renders an error message with a red X.
func (u *UI) Error(msg string) string {
	if !u.shouldStyle() {
		return "[FAILED] " + msg
	}
	return StyleError.Render(SymbolError + " " + msg)
}

// Warning renders a warning message.
func (u *UI) Warning(msg string) string {
	if !u.shouldStyle() {
		return "[WARN] " + msg
	}
	return StyleWarning.Render(SymbolWarning + " " + msg)
}

// Muted renders muted/dim text.
func (u *UI) Muted(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return StyleMuted.Render(msg)
}

// SummaryBox renders a bordered summary section.
func (u *UI) SummaryBox(title string, items []KV) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n=== %s ===\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "%-18s %s\n", item.Key+":", item.Value)
		}
		return sb.String()
	}

	maxKeyWidth := 0
	for _, item := range items {
		if len(item.Key) > maxKeyWidth {
			maxKeyWidth = len(item.Key)
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(maxKeyWidth + 2)
	valueStyle := lipgloss.NewStyle().Bold(true)

	var lines []string
	for _, item := range items {
		value := item.Value
		lower := strings.ToLower(value)
		switch {
		case item.Key == "Status" && (strings.Contains(lower, "success") || strings.Contains(lower, "clean")):
			value = StyleSuccess.Render(SymbolSuccess + " " + value)
		case item.Key == "Status" && strings.Contains(lower, "fail"):
			value = StyleError.Render(SymbolError + " " + value)
		default:
			value = valueStyle.Render(value)
		}
		lines = append(lines, "  "+keyStyle.Render(item.Key)+" "+value)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1)

	return "\n" + titleStyle.Render("  "+title) + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
}

// Table renders rows under headers.
func (u *UI) Table(headers []string, rows [][]string) string {
	if !u.shouldStyle() {
		widths := make([]int, len(headers))
		for i, h := range headers {
			widths[i] = len(h)
		}
		for _, r := range rows {
			for i := range headers {
				if i < len(r) && len(r[i]) > widths[i] {
					widths[i] = len(r[i])
				}
			}
		}

		var sb strings.Builder
		writeRow := func(cells []string) {
			for i := range headers {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				if i == len(headers)-1 {
					sb.WriteString(cell)
				} else {
					fmt.Fprintf(&sb, "%-*s  ", widths[i], cell)
				}
			}
			sb.WriteString("\n")
		}
		writeRow(headers)
		for _, r := range rows {
			writeRow(r)
		}
		return sb.String()
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// TableRow renders a single status line.
func (u *UI) TableRow(name string, value string, status Status) string {
	if !u.shouldStyle() {
		prefix := ""
		if status == StatusError {
			prefix = "FAILED: "
		}
		return fmt.Sprintf("  %-15s %s%s", name+":", prefix, value)
	}

	nameStyle := lipgloss.NewStyle().Width(15)
	var symbol, valueStyled string

	switch status {
	case StatusSuccess:
		symbol = StyleSuccess.Render(SymbolSuccess)
		valueStyled = value
	case StatusError:
		symbol = StyleError.Render(SymbolError)
		valueStyled = StyleError.Render(value)
	case StatusPending:
		symbol = StyleMuted.Render(SymbolPending)
		valueStyled = StyleMuted.Render(value)
	default:
		symbol = " "
		valueStyled = value
	}

	return fmt.Sprintf("  %s %s %s", symbol, nameStyle.Render(name), valueStyled)
}

// Status represents the status of an operation.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusSuccess
	StatusError
)
