package markup

// Point is a position in either screen or raster space.
type Point struct {
	X, Y float64
}

// Viewport is the on-screen rectangle the raster is displayed in.
type Viewport struct {
	Left, Top     float64
	Width, Height float64
}

// ToRaster maps a screen position into a raster of rw x rh pixels.
// A viewport with no size is treated as displaying the raster 1:1.
func (v Viewport) ToRaster(p Point, rw, rh int) Point {
	sx, sy := 1.0, 1.0
	if v.Width > 0 {
		sx = float64(rw) / v.Width
	}
	if v.Height > 0 {
		sy = float64(rh) / v.Height
	}
	return Point{
		X: (p.X - v.Left) * sx,
		Y: (p.Y - v.Top) * sy,
	}
}

// Contains reports whether a screen position lies inside the viewport.
func (v Viewport) Contains(p Point) bool {
	return p.X >= v.Left && p.Y >= v.Top &&
		p.X < v.Left+v.Width && p.Y < v.Top+v.Height
}
