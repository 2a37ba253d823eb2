package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/auracoil/auracoil/internal/state"
)

// ColorEnabled reports whether f is an interactive terminal. Non-terminal
// destinations (pipes, files, CI) get plain text.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	styleHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SeverityLabel renders a severity marker, colored when enabled.
func SeverityLabel(sev state.Severity, color bool) string {
	var icon string
	var style lipgloss.Style
	switch sev {
	case state.SeverityHigh:
		icon, style = "[!!]", styleHigh
	case state.SeverityMedium:
		icon, style = "[!]", styleMedium
	case state.SeverityLow:
		icon, style = "[-]", styleLow
	default:
		icon, style = "[?]", styleLow
	}
	if color {
		return style.Render(icon)
	}
	return icon
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// wrapText wraps s at width columns, breaking on spaces.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
