package markup

import (
	"image/color"
	"testing"
)

func TestViewportToRaster(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		p      Point
		rw, rh int
		want   Point
	}{
		{"identity", Viewport{Width: 100, Height: 80}, Point{12, 34}, 100, 80, Point{12, 34}},
		{"half size", Viewport{Width: 50, Height: 40}, Point{10, 5}, 100, 80, Point{20, 10}},
		{"offset and scale", Viewport{Left: 30, Top: 10, Width: 200, Height: 100}, Point{130, 60}, 400, 50, Point{200, 25}},
		{"unsized", Viewport{}, Point{3, 4}, 10, 10, Point{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.ToRaster(tt.p, tt.rw, tt.rh); got != tt.want {
				t.Fatalf("ToRaster() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurfaceToRasterUsesRasterSize(t *testing.T) {
	s := New()
	ticket := s.Begin(FileRef("x.png"))
	s.Complete(ticket, solidImage(64, 48, color.White), nil)
	s.SetViewport(Viewport{Left: 4, Top: 2, Width: 32, Height: 24})
	if got := s.ToRaster(Point{20, 14}); got != (Point{32, 24}) {
		t.Fatalf("ToRaster() = %v, want {32 24}", got)
	}
}

func TestViewportContains(t *testing.T) {
	vp := Viewport{Left: 2, Top: 2, Width: 4, Height: 4}
	if !vp.Contains(Point{2, 2}) || !vp.Contains(Point{5.9, 5.9}) {
		t.Fatal("expected inside points to be contained")
	}
	if vp.Contains(Point{6, 3}) || vp.Contains(Point{1, 3}) {
		t.Fatal("expected outside points to be rejected")
	}
}

func TestPaletteAndTools(t *testing.T) {
	wantHex := map[Color]string{Red: "#ef4444", Blue: "#3b82f6", Green: "#22c55e", Black: "#000000"}
	for c, hex := range wantHex {
		if got := c.Hex(); got != hex {
			t.Errorf("%v.Hex() = %q, want %q", c, got, hex)
		}
		parsed, err := ParseColor(hex)
		if err != nil || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v", hex, parsed, err)
		}
		parsed, err = ParseColor(c.String())
		if err != nil || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), parsed, err)
		}
	}
	if _, err := ParseColor("purple"); err == nil {
		t.Error("ParseColor(purple) error = nil")
	}
	if Black.Next() != Red {
		t.Error("palette does not wrap")
	}
	if !ToolPen.Draws() || ToolRectangle.Draws() || ToolText.Draws() {
		t.Error("only the pen tool draws")
	}
	if New().Color() != Red || New().Tool() != ToolPen {
		t.Error("defaults must be red pen")
	}
}
