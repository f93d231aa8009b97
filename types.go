package main

import (
	"image"

	"redline/internal/markup"
	"redline/internal/store"
)

type model struct {
	width          int
	height         int
	mode           Mode
	help           bool
	helpScroll     int
	surface        *markup.Surface
	loader         *markup.Loader
	config         *Config
	store          *store.Store
	savers         map[SaveTarget]markup.Saver
	view           viewRect
	filename       string
	confirmAction  ConfirmAction
	pendingRef     markup.Ref
	saved          []store.Summary
	selectedSaved  int
	errorMessage   string
	successMessage string
}

// viewRect is the terminal area the raster occupies, in cells. Each cell
// shows two display pixels stacked vertically.
type viewRect struct {
	left, top  int
	cols, rows int
	pixW, pixH int
	rasterW    int
	rasterH    int
}

func (v viewRect) empty() bool {
	return v.cols <= 0 || v.rows <= 0
}

// displayPoint converts a terminal cell to display pixel coordinates,
// taking the cell's centre column and the upper half-block row.
func displayPoint(x, y int) markup.Point {
	return markup.Point{X: float64(x) + 0.5, Y: float64(y*2) + 0.5}
}

// viewport is the surface viewport matching v in display pixel space.
func (v viewRect) viewport() markup.Viewport {
	return markup.Viewport{
		Left:   float64(v.left),
		Top:    float64(v.top * 2),
		Width:  float64(v.pixW),
		Height: float64(v.pixH),
	}
}

type imageLoadedMsg struct {
	ticket markup.Ticket
	img    image.Image
	err    error
}

type savedListMsg struct {
	items []store.Summary
	err   error
}
