package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"redline/internal/markup"
)

// handleMouse turns terminal mouse events into surface pointer input.
// Only a left press starts a stroke. A held drag that leaves the image ends
// the stroke, and coming back in without a new press draws nothing.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.help || tea.MouseEvent(msg).IsWheel() {
		return
	}
	p := displayPoint(msg.X, msg.Y)
	inside := !m.view.empty() && m.surface.Viewport().Contains(p)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.surface.PointerDown(p)
		}
	case tea.MouseActionMotion:
		if !m.surface.Stroking() {
			return
		}
		if inside {
			m.surface.PointerMove(p)
		} else {
			m.surface.PointerLeave()
		}
	case tea.MouseActionRelease:
		m.surface.PointerUp()
	}
}

// handleToolKey applies tool and color shortcuts. It reports whether the
// key was one of them.
func (m *model) handleToolKey(key string) bool {
	switch key {
	case "p", "1":
		m.selectTool(markup.ToolPen)
	case "r", "2":
		m.selectTool(markup.ToolRectangle)
	case "t", "3":
		m.selectTool(markup.ToolText)
	case "c", "tab":
		m.surface.SelectColor(m.surface.Color().Next())
	case "C", "shift+tab":
		c := m.surface.Color()
		for i := 0; i < len(markup.Palette())-1; i++ {
			c = c.Next()
		}
		m.surface.SelectColor(c)
	default:
		return false
	}
	return true
}

func (m *model) selectTool(t markup.Tool) {
	m.surface.SelectTool(t)
	m.successMessage = ""
	if !t.Draws() {
		m.successMessage = fmt.Sprintf("%s tool has no drawing yet", t)
	}
}

// layout recomputes where the raster sits for the current window size.
func (m *model) layout() {
	b := m.surface.Bounds()
	rows := m.height - toolbarRows - statusRows
	m.view = fitView(b.Dx(), b.Dy(), m.width, rows, toolbarRows)
	if !m.view.empty() {
		m.surface.SetViewport(m.view.viewport())
	}
}
