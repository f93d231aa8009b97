// Package markup implements the annotation surface: an editable raster
// copy of a source image with freehand pen strokes and snapshot undo.
//
// A Surface is owned by a single event loop and is not safe for
// concurrent use. Only image decoding happens elsewhere; its result is
// handed back through Complete.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// StrokeWidth is the pen width in raster pixels.
const StrokeWidth = 3.0

var (
	ErrNotReady = errors.New("no image loaded")
	ErrNoSaver  = errors.New("no save destination configured")
)

type State int

const (
	Unloaded State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Ticket identifies one load request. Results delivered with a ticket
// from an older request are discarded.
type Ticket struct {
	gen uint64
	ref Ref
}

func (t Ticket) Ref() Ref { return t.ref }

// Artifact is an encoded export of the raster.
type Artifact struct {
	Name   string
	Source string
	Format string
	Width  int
	Height int
	Data   []byte
}

// Saver persists exported artifacts and returns where they ended up.
type Saver interface {
	SaveMarkup(ctx context.Context, a Artifact) (string, error)
}

type Surface struct {
	state State
	gen   uint64
	ref   Ref

	raster   *image.RGBA
	original *image.RGBA
	dc       *gg.Context
	history  history
	viewport Viewport

	tool        Tool
	color       Color
	strokeColor Color
	stroking    bool
	last        Point
}

type Option func(*Surface)

// WithHistoryLimit caps the number of undo snapshots; 0 means unbounded.
func WithHistoryLimit(n int) Option {
	return func(s *Surface) {
		if n > 0 {
			s.history.limit = n
		}
	}
}

func WithColor(c Color) Option {
	return func(s *Surface) {
		if c.Valid() {
			s.color = c
		}
	}
}

func New(opts ...Option) *Surface {
	s := &Surface{tool: ToolPen, color: Red}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) State() State   { return s.state }
func (s *Surface) Stroking() bool { return s.stroking }
func (s *Surface) Tool() Tool     { return s.tool }
func (s *Surface) Color() Color   { return s.color }
func (s *Surface) Source() Ref    { return s.ref }
func (s *Surface) CanUndo() bool  { return s.state == Ready && s.history.len() > 0 }
func (s *Surface) HistoryLen() int {
	return s.history.len()
}

// Bounds returns the raster rectangle, or an empty one when nothing is loaded.
func (s *Surface) Bounds() image.Rectangle {
	if s.raster == nil {
		return image.Rectangle{}
	}
	return s.raster.Bounds()
}

// Raster returns a copy of the current pixels, or nil when not ready.
func (s *Surface) Raster() *image.RGBA {
	if s.raster == nil {
		return nil
	}
	return cloneRGBA(s.raster)
}

// Begin starts loading ref, from any state. The previous raster and
// history are dropped and a superseded blob is released.
func (s *Surface) Begin(ref Ref) Ticket {
	if s.ref.blob != nil && s.ref.blob != ref.blob {
		s.ref.release()
	}
	s.gen++
	s.ref = ref
	s.drop()
	s.state = Loading
	Logger().Debug("load started", "source", ref.String(), "gen", s.gen)
	return Ticket{gen: s.gen, ref: ref}
}

// Complete delivers the outcome of the load identified by t. It returns
// false when the result is stale and was ignored.
func (s *Surface) Complete(t Ticket, img image.Image, err error) bool {
	if t.gen != s.gen || s.state != Loading {
		Logger().Debug("stale load discarded", "gen", t.gen, "current", s.gen)
		return false
	}
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = errors.New("image has no pixels")
	}
	if err != nil {
		s.state = Unloaded
		Logger().Warn("load failed", "source", t.ref.String(), "err", err)
		return true
	}

	b := img.Bounds()
	raster := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(raster, raster.Bounds(), img, b.Min, draw.Src)

	s.raster = raster
	s.original = cloneRGBA(raster)
	s.dc = newContext(raster)
	s.viewport = Viewport{Width: float64(b.Dx()), Height: float64(b.Dy())}
	s.state = Ready
	Logger().Info("image ready", "source", t.ref.String(), "width", b.Dx(), "height", b.Dy())
	return true
}

// Close tears the surface down and releases a transient source.
func (s *Surface) Close() {
	s.gen++
	s.ref.release()
	s.ref = Ref{}
	s.drop()
	s.state = Unloaded
}

func (s *Surface) SelectTool(t Tool) {
	if !t.Valid() {
		return
	}
	if t != s.tool {
		s.endStroke()
	}
	s.tool = t
}

// SelectColor changes the color of strokes started afterwards.
func (s *Surface) SelectColor(c Color) {
	if c.Valid() {
		s.color = c
	}
}

// SetViewport records where the raster is displayed on screen.
func (s *Surface) SetViewport(v Viewport) {
	s.viewport = v
}

func (s *Surface) Viewport() Viewport { return s.viewport }

// ToRaster maps a screen position into raster space.
func (s *Surface) ToRaster(p Point) Point {
	b := s.Bounds()
	return s.viewport.ToRaster(p, b.Dx(), b.Dy())
}

func (s *Surface) PointerDown(p Point) {
	if s.state != Ready {
		return
	}
	s.tool.behavior().pointerDown(s, s.ToRaster(p))
}

func (s *Surface) PointerMove(p Point) {
	if s.state != Ready || !s.stroking {
		return
	}
	s.tool.behavior().pointerMove(s, s.ToRaster(p))
}

func (s *Surface) PointerUp() {
	s.endStroke()
}

func (s *Surface) PointerLeave() {
	s.endStroke()
}

// Undo restores the most recent snapshot. It reports whether anything
// was undone. Once the history is empty the original image is repainted,
// which only changes the raster if a history limit dropped old snapshots.
func (s *Surface) Undo() bool {
	if s.state != Ready {
		return false
	}
	s.endStroke()
	snap, ok := s.history.pop()
	if !ok {
		if bytes.Equal(s.raster.Pix, s.original.Pix) {
			return false
		}
		copy(s.raster.Pix, s.original.Pix)
		return true
	}
	if len(snap) != len(s.raster.Pix) {
		copy(s.raster.Pix, s.original.Pix)
		return true
	}
	copy(s.raster.Pix, snap)
	return true
}

// Clear repaints the original image. The cleared state is undoable.
func (s *Surface) Clear() {
	if s.state != Ready {
		return
	}
	s.endStroke()
	s.pushHistory()
	copy(s.raster.Pix, s.original.Pix)
}

// Save encodes the raster as PNG and hands it to saver. The raster is
// never modified; on failure the error is returned for the caller to report.
func (s *Surface) Save(ctx context.Context, saver Saver) (string, error) {
	if s.state != Ready {
		return "", ErrNotReady
	}
	if saver == nil {
		return "", ErrNoSaver
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	b := s.raster.Bounds()
	a := Artifact{
		Name:   s.ref.Name() + "-markup",
		Source: s.ref.String(),
		Format: "png",
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   buf.Bytes(),
	}
	location, err := saver.SaveMarkup(ctx, a)
	if err != nil {
		Logger().Warn("save failed", "source", a.Source, "err", err)
		return "", fmt.Errorf("save markup: %w", err)
	}
	Logger().Info("markup saved", "location", location, "bytes", len(a.Data))
	return location, nil
}

func (s *Surface) pushHistory() {
	s.history.push(s.raster.Pix)
}

func (s *Surface) strokeSegment(from, to Point) {
	s.dc.SetColor(s.strokeColor.RGBA())
	s.dc.MoveTo(from.X, from.Y)
	s.dc.LineTo(to.X, to.Y)
	s.dc.Stroke()
}

func (s *Surface) endStroke() {
	if s.stroking {
		s.tool.behavior().pointerUp(s)
	}
	s.stroking = false
}

func (s *Surface) drop() {
	s.raster = nil
	s.original = nil
	s.dc = nil
	s.history.reset()
	s.stroking = false
}

func newContext(raster *image.RGBA) *gg.Context {
	dc := gg.NewContextForRGBA(raster)
	dc.SetLineWidth(StrokeWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return dc
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
