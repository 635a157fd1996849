package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Theme defines the visual styling for corral output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
}

// DefaultTheme returns the default corral theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("12"),  // Blue
		Secondary: lipgloss.Color("14"),  // Cyan
		Success:   lipgloss.Color("10"),  // Green
		Warning:   lipgloss.Color("11"),  // Yellow
		Error:     lipgloss.Color("9"),   // Red
		Muted:     lipgloss.Color("240"), // Gray
	}
}

// heading styles s as a section heading when color is on.
func (t Theme) heading(s string, color bool) string {
	if !color {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(s)
}

// muted styles s as secondary detail when color is on.
func (t Theme) muted(s string, color bool) string {
	if !color {
		return s
	}
	return lipgloss.NewStyle().Foreground(t.Muted).Render(s)
}

// useColor reports whether w is an interactive terminal. Piped and
// redirected output stays plain so it can be grepped and diffed.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
