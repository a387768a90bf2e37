// Package render owns the raster surfaces drawing commands are replayed onto.
//
// A Surface is a gg context with a uniform scale applied to its coordinate
// system, so the same command renders identically on the live canvas and on
// an upscaled export target.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
)

// ErrInvalidSize is returned for surfaces with a non-positive dimension or scale.
var ErrInvalidSize = errors.New("render: invalid surface size")

var _ draw.Image = (*gg.Pixmap)(nil)

// Surface is a raster target in logical canvas coordinates.
type Surface struct {
	dc     *gg.Context
	fonts  *Fonts
	width  int
	height int
	scale  int
}

// NewSurface creates a surface of width x height logical pixels backed by a
// (width*scale) x (height*scale) raster.
func NewSurface(width, height, scale int, fonts *Fonts) (*Surface, error) {
	if width <= 0 || height <= 0 || scale < 1 {
		return nil, ErrInvalidSize
	}
	dc := gg.NewContext(width*scale, height*scale)
	dc.Scale(float64(scale), float64(scale))
	return &Surface{
		dc:     dc,
		fonts:  fonts,
		width:  width,
		height: height,
		scale:  scale,
	}, nil
}

// Width is the logical width.
func (s *Surface) Width() int { return s.width }

// Height is the logical height.
func (s *Surface) Height() int { return s.height }

// Scale is the uniform upscale factor.
func (s *Surface) Scale() int { return s.scale }

// Bounds is the size of the backing raster.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width*s.scale, s.height*s.scale)
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	s.dc.Clear()
}

// Polyline strokes a connected line through pts with round caps and joins.
// Fewer than two points draw nothing.
func (s *Surface) Polyline(pts []gg.Point, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.Push()
	defer s.dc.Pop()

	s.dc.SetStroke(gg.RoundStroke().WithWidth(width))
	s.dc.SetColor(col)
	s.dc.ClearPath()
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	if err := s.dc.Stroke(); err != nil {
		gg.Logger().Warn("polyline stroke failed", slog.Any("err", err))
	}
}

// Ring strokes a circle outline of radius r centred on (x, y).
func (s *Surface) Ring(x, y, r, width float64, col color.Color) {
	s.dc.Push()
	defer s.dc.Pop()

	s.dc.SetStroke(gg.DefaultStroke().WithWidth(width))
	s.dc.SetColor(col)
	s.dc.ClearPath()
	s.dc.DrawCircle(x, y, r)
	if err := s.dc.Stroke(); err != nil {
		gg.Logger().Warn("ring stroke failed", slog.Any("err", err))
	}
}

// Glyph draws str centred on (x, y) at size logical pixels. Faces are picked
// at device size so glyphs stay sharp on upscaled surfaces.
func (s *Surface) Glyph(str string, x, y, size float64, col color.Color) {
	if str == "" || s.fonts == nil || size <= 0 {
		return
	}
	px, py := s.dc.TransformPoint(x, y)
	if err := s.dc.FlushGPU(); err != nil {
		gg.Logger().Warn("flush before glyph failed", slog.Any("err", err))
	}
	s.fonts.Draw(s.dc.ResizeTarget(), str, px, py, size*float64(s.scale), col)
}

// Image returns the backing raster.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the backing raster as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *Surface) Close() error {
	return s.dc.Close()
}
