package main

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

const (
	halfBlock  = "▀"
	colorReset = "\x1b[0m"
)

// fitView centres a raster of rw x rh pixels inside an area of cols x rows
// terminal cells, keeping its aspect ratio. Cells are two pixels tall.
func fitView(rw, rh, cols, rows, top int) viewRect {
	if rw <= 0 || rh <= 0 || cols <= 0 || rows <= 0 {
		return viewRect{}
	}
	maxW, maxH := cols, rows*2
	pixW, pixH := maxW, rh*maxW/rw
	if pixH > maxH {
		pixH = maxH
		pixW = rw * maxH / rh
	}
	if pixW < 1 {
		pixW = 1
	}
	if pixH < 2 {
		pixH = 2
	}
	pixH += pixH % 2

	v := viewRect{
		cols:    pixW,
		rows:    pixH / 2,
		pixW:    pixW,
		pixH:    pixH,
		rasterW: rw,
		rasterH: rh,
	}
	v.left = (cols - v.cols) / 2
	v.top = top + (rows-v.rows)/2
	return v
}

// renderRaster draws img into the rows of an area cols wide, placing it at
// v. Lines outside the raster are padded with spaces.
func renderRaster(img *image.RGBA, v viewRect, cols, rows, top int) []string {
	lines := make([]string, rows)
	blank := strings.Repeat(" ", cols)
	for i := range lines {
		lines[i] = blank
	}
	if img == nil || v.empty() {
		return lines
	}

	scaled := image.NewRGBA(image.Rect(0, 0, v.pixW, v.pixH))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	pad := strings.Repeat(" ", v.left)
	tail := strings.Repeat(" ", max(cols-v.left-v.cols, 0))
	for r := 0; r < v.rows; r++ {
		line := r + v.top - top
		if line < 0 || line >= rows {
			continue
		}
		var b strings.Builder
		b.WriteString(pad)
		for c := 0; c < v.cols; c++ {
			upper := scaled.RGBAAt(c, r*2)
			lower := scaled.RGBAAt(c, r*2+1)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				upper.R, upper.G, upper.B, lower.R, lower.G, lower.B, halfBlock)
		}
		b.WriteString(colorReset)
		b.WriteString(tail)
		lines[line] = b.String()
	}
	return lines
}
