package markup

import "fmt"

// Tool selects what pointer input does to the raster.
type Tool int

const (
	ToolPen Tool = iota
	ToolRectangle
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolRectangle:
		return "rectangle"
	case ToolText:
		return "text"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

func (t Tool) Valid() bool {
	return t >= ToolPen && t <= ToolText
}

// Draws reports whether the tool rasterizes anything. Rectangle and text
// can be selected but have no drawing behavior yet.
func (t Tool) Draws() bool {
	return t == ToolPen
}

// toolBehavior receives pointer input in raster space.
type toolBehavior interface {
	pointerDown(s *Surface, p Point)
	pointerMove(s *Surface, p Point)
	pointerUp(s *Surface)
}

func (t Tool) behavior() toolBehavior {
	if t == ToolPen {
		return penTool{}
	}
	return inertTool{}
}

type penTool struct{}

func (penTool) pointerDown(s *Surface, p Point) {
	s.pushHistory()
	s.strokeColor = s.color
	s.stroking = true
	s.last = p
}

func (penTool) pointerMove(s *Surface, p Point) {
	if !s.stroking {
		return
	}
	s.strokeSegment(s.last, p)
	s.last = p
}

func (penTool) pointerUp(s *Surface) {
	s.stroking = false
}

// inertTool backs rectangle and text until they get shape rendering.
// TODO: rasterize rectangle outlines and text labels once a placement UI exists.
type inertTool struct{}

func (inertTool) pointerDown(*Surface, Point) {}
func (inertTool) pointerMove(*Surface, Point) {}
func (inertTool) pointerUp(s *Surface)        { s.stroking = false }
