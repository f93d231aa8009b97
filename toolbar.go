package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"redline/internal/markup"
)

var (
	toolbarStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Reverse(true)
	inactiveStyle = lipgloss.NewStyle().Faint(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// toolbar renders tool, palette and history state on one line.
func (m model) toolbar(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" redline "))
	b.WriteString("│ ")

	for _, tool := range []markup.Tool{markup.ToolPen, markup.ToolRectangle, markup.ToolText} {
		label := fmt.Sprintf(" %s ", tool)
		if tool == m.surface.Tool() {
			b.WriteString(activeStyle.Render(label))
		} else {
			b.WriteString(inactiveStyle.Render(label))
		}
	}

	b.WriteString(" │ ")
	for _, c := range markup.Palette() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("●")
		if c == m.surface.Color() {
			b.WriteString("[" + swatch + "]")
		} else {
			b.WriteString(" " + swatch + " ")
		}
	}

	b.WriteString(" │ ")
	undo := fmt.Sprintf("undo %d", m.surface.HistoryLen())
	if m.surface.CanUndo() {
		b.WriteString(undo)
	} else {
		b.WriteString(inactiveStyle.Render(undo))
	}
	return toolbarStyle.MaxWidth(width).Render(b.String())
}

// placeholder fills the image area while nothing is drawable.
func (m model) placeholder(width, rows int) string {
	var lines []string
	switch m.surface.State() {
	case markup.Loading:
		verb := "Loading "
		if m.surface.Source().Kind() == markup.RefURL {
			verb = "Downloading "
		}
		lines = []string{
			selectedStyle.Render(verb + m.surface.Source().Name() + "…"),
			mutedStyle.Render(m.surface.Source().String()),
		}
	default:
		if m.surface.Source().IsZero() {
			lines = []string{
				selectedStyle.Render("No Document Selected"),
				mutedStyle.Render("Open an image or blueprint to start annotating."),
				"",
				"o open file or URL   v paste location   m sample image   ? help",
			}
		} else {
			lines = []string{
				selectedStyle.Render("Image could not be loaded"),
				mutedStyle.Render(m.surface.Source().String()),
				"",
				"o open another image   m sample image",
			}
		}
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center, content)
}

// browseLines lists saved markups, newest first.
func (m model) browseLines(width, rows int) []string {
	lines := make([]string, 0, rows)
	lines = append(lines, selectedStyle.Render("Saved markups"), strings.Repeat("─", width))
	if len(m.saved) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing saved yet."))
	}

	visible := max(rows-len(lines), 1)
	start := 0
	if m.selectedSaved >= visible {
		start = m.selectedSaved - visible + 1
	}
	for i := start; i < len(m.saved) && len(lines) < rows; i++ {
		item := m.saved[i]
		entry := fmt.Sprintf("%s  %-24s %4dx%-4d %s", item.CreatedAt.Local().Format("2006-01-02 15:04"),
			item.Name, item.Width, item.Height, item.Source)
		if i == m.selectedSaved {
			lines = append(lines, activeStyle.MaxWidth(width).Render("> "+entry))
		} else {
			lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render("  "+entry))
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}
