package markup

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is one entry of the fixed annotation palette.
type Color int

const (
	Red Color = iota
	Blue
	Green
	Black
)

const numColors = 4

var paletteRGBA = [numColors]color.NRGBA{
	Red:   {R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	Blue:  {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	Green: {R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	Black: {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
}

var paletteNames = [numColors]string{"red", "blue", "green", "black"}

// Palette returns every selectable color in display order.
func Palette() []Color {
	return []Color{Red, Blue, Green, Black}
}

func (c Color) Valid() bool {
	return c >= 0 && c < numColors
}

// RGBA returns the pixel value strokes are drawn with.
func (c Color) RGBA() color.NRGBA {
	if !c.Valid() {
		return paletteRGBA[Red]
	}
	return paletteRGBA[c]
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	v := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", v.R, v.G, v.B)
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return paletteNames[c]
}

// Next cycles through the palette.
func (c Color) Next() Color {
	if !c.Valid() {
		return Red
	}
	return (c + 1) % numColors
}

// ParseColor accepts a palette name or its hex value.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Palette() {
		if v == c.String() || v == c.Hex() || "#"+v == c.Hex() {
			return c, nil
		}
	}
	return Red, fmt.Errorf("unknown color %q", s)
}
