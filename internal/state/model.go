package state

import (
	"image/color"

	"github.com/gogpu/gg"

	"StickerSketch/internal/render"
)

// Point is a position in canvas pixel space.
type Point struct{ X, Y float64 }

// Drawable is anything that can render itself onto a surface.
type Drawable interface {
	Render(s *render.Surface)
}

// Command is a drawable the log accepts. The set is closed to Stroke and
// Sticker; previews render but never implement it.
type Command interface {
	Drawable
	command()
}

// DefaultStickerSize is the font size a sticker is placed at.
const DefaultStickerSize = 24

// Stroke is a freehand polyline. Points grow while the pointer is held and
// are frozen once the stroke is released.
type Stroke struct {
	ID        string
	Points    []Point
	Thickness float64
	Color     color.NRGBA
}

func newStroke(start Point, thickness float64, col color.NRGBA) *Stroke {
	return &Stroke{
		ID:        newID(),
		Points:    []Point{start},
		Thickness: thickness,
		Color:     col,
	}
}

func (s *Stroke) addPoint(p Point) {
	s.Points = append(s.Points, p)
}

// Render draws the polyline. A single point leaves no mark.
func (s *Stroke) Render(surface *render.Surface) {
	if len(s.Points) <= 1 {
		return
	}
	pts := make([]gg.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = gg.Pt(p.X, p.Y)
	}
	surface.Polyline(pts, s.Thickness, s.Color)
}

func (*Stroke) command() {}

// Sticker is a glyph placed on the canvas. It can be dragged after placement.
type Sticker struct {
	ID    string
	Glyph string
	X, Y  float64
	Size  float64
}

func newSticker(glyph string, at Point, size float64) *Sticker {
	return &Sticker{
		ID:    newID(),
		Glyph: glyph,
		X:     at.X,
		Y:     at.Y,
		Size:  size,
	}
}

// Contains reports whether (x, y) lies within size/2 of the sticker centre.
// The boundary counts as inside.
func (s *Sticker) Contains(x, y float64) bool {
	r := s.Size / 2
	dx := x - s.X
	dy := y - s.Y
	return dx*dx+dy*dy <= r*r
}

// MoveTo repositions the sticker centre.
func (s *Sticker) MoveTo(x, y float64) {
	s.X = x
	s.Y = y
}

func (s *Sticker) Render(surface *render.Surface) {
	surface.Glyph(s.Glyph, s.X, s.Y, s.Size, color.Black)
}

func (*Sticker) command() {}

// BrushPreview is the ring that follows the cursor in draw mode.
type BrushPreview struct {
	At        Point
	Thickness float64
	Color     color.NRGBA
}

func (p *BrushPreview) Render(surface *render.Surface) {
	c := p.Color
	c.A = uint8(float64(c.A) * 0.8)
	surface.Ring(p.At.X, p.At.Y, p.Thickness/2, 2, c)
}

// StickerPreview is the ghost of the selected glyph under the cursor.
type StickerPreview struct {
	At    Point
	Glyph string
	Size  float64
}

func (p *StickerPreview) Render(surface *render.Surface) {
	surface.Glyph(p.Glyph, p.At.X, p.At.Y, p.Size, color.NRGBA{A: 0x99})
}

