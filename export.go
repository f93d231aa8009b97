package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"redline/internal/export"
	"redline/internal/markup"
	"redline/internal/store"
)

const saveTimeout = 10 * time.Second

func newSavers(config *Config, st *store.Store) map[SaveTarget]markup.Saver {
	savers := map[SaveTarget]markup.Saver{
		SavePNG: export.NewPNGFile(config.SaveDirectory),
		SavePDF: export.NewPDFFile(config.SaveDirectory),
	}
	if st != nil {
		savers[SaveDatabase] = st
	}
	return savers
}

// save exports the raster to target. Failures are reported on the status
// line and leave the markup untouched so the user can retry.
func (m *model) save(target SaveTarget) {
	saver, ok := m.savers[target]
	if !ok {
		m.errorMessage = fmt.Sprintf("%s saving is not configured", target)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	location, err := m.surface.Save(ctx, saver)
	if err != nil {
		log.Printf("save %s: %v", target, err)
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = fmt.Sprintf("Saved %s: %s", target, location)
	if err := writeClipboardText(location); err == nil {
		m.successMessage += " (copied)"
	}
}

func listSavedCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		items, err := st.List(ctx, browseLimit)
		return savedListMsg{items: items, err: err}
	}
}

// reopenSaved loads a stored markup back onto the surface through an
// in-memory blob.
func (m *model) reopenSaved(id string) tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	saved, err := m.store.Get(ctx, id)
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	return m.open(markup.BlobRef(markup.NewBlob(saved.Name+"."+saved.Format, saved.Data)))
}
