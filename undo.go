package main

func (m *model) undo() {
	if !m.surface.Undo() {
		m.successMessage = "Nothing to undo"
		return
	}
	m.successMessage = "Undone"
}

func (m *model) clear() {
	m.surface.Clear()
	m.successMessage = "Markup cleared (u to undo)"
}
