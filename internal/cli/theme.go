package cli

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Purple
	colorAccent  = lipgloss.Color("#F97316") // Orange
	colorSuccess = lipgloss.Color("#22C55E") // Green
	colorError   = lipgloss.Color("#F43F5E") // Rose
	colorTextDim = lipgloss.Color("#94A3B8") // Slate
	colorBorder  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	incorrectStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorSuccess).
			Foreground(colorSuccess).
			Bold(true).
			Padding(0, 2)
)

// printer writes styled lines, or bare text when plain is set.
type printer struct {
	w     io.Writer
	plain bool
}

func (p printer) render(style lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return style.Render(text)
}

func (p printer) styled(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, p.render(style, fmt.Sprintf(format, args...)))
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p printer) title(format string, args ...any)     { p.styled(titleStyle, format, args...) }
func (p printer) hint(format string, args ...any)      { p.styled(hintStyle, format, args...) }
func (p printer) correct(format string, args ...any)   { p.styled(correctStyle, format, args...) }
func (p printer) incorrect(format string, args ...any) { p.styled(incorrectStyle, format, args...) }

// card draws lines inside a rounded box.
func (p printer) card(lines ...string) {
	body := strings.Join(lines, "\n")
	if p.plain {
		fmt.Fprintln(p.w, body)
		return
	}
	fmt.Fprintln(p.w, cardStyle.Render(body))
}

func (p printer) banner(text string) {
	fmt.Fprintln(p.w, p.render(bannerStyle, text))
}

func (p printer) label(text string) string {
	return p.render(labelStyle, text)
}

// prompt writes text without a trailing newline.
func (p printer) prompt(text string) {
	fmt.Fprint(p.w, p.render(labelStyle, text))
}
