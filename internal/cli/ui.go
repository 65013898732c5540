package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colors: the three primaries plus neutrals.
var (
	colorRed    = lipgloss.Color("160")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("33")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleHighlight marks the active mode in the draw status line.
	StyleHighlight = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	// StyleDim is for labels and help text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue is for values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber is for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorYellow)

	styleSpinner = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// statusKind selects the icon and color of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusWarning
	statusError
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorBlue)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorYellow)},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRed)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray)},
}

// statusLine renders msg behind the icon for kind.
func statusLine(kind statusKind, msg string) string {
	s := statusIcons[kind]
	return s.style.Render(s.icon) + " " + msg
}

// printer writes user-facing command output. Logs go to the logger instead.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, statusLine(statusSuccess, fmt.Sprintf(format, args...)))
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, statusLine(statusWarning, StyleNumber.Render(fmt.Sprintf(format, args...))))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, statusLine(statusInfo, fmt.Sprintf(format, args...)))
}

// detail prints an indented secondary line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path, tagged when it came from the cache.
func (p printer) file(path string, cached bool) {
	line := "  " + StyleDim.Render("→") + " " + StyleValue.Render(path)
	if cached {
		line += " " + StyleDim.Render("(cached)")
	}
	fmt.Fprintln(p.w, line)
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}
