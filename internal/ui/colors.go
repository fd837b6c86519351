package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	purple = lipgloss.Color("#7D56F4")
	green  = lipgloss.Color("#04B575")
	red    = lipgloss.Color("#FF0000")
	orange = lipgloss.Color("#FFA500")
	gray   = lipgloss.Color("#626262")
)

var styles = palette{
	title: fg(purple).Bold(true).MarginBottom(1),
	ok:    fg(green).Bold(true),
	err:   fg(red).Bold(true),
	warn:  fg(orange),
	help:  fg(gray).Italic(true),
}

// palette is the stylesheet of the picker.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// accuracyStyle picks the color for an accuracy score.
func accuracyStyle(acc float64) lipgloss.Style {
	switch {
	case acc >= 90:
		return styles.ok
	case acc >= 70:
		return styles.warn
	default:
		return styles.err
	}
}
