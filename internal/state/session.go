package state

import (
	"image/color"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/gg"

	"StickerSketch/internal/render"
)

// Mode is the active tool.
type Mode int

const (
	ModeDraw Mode = iota
	ModeSticker
)

func (m Mode) String() string {
	if m == ModeSticker {
		return "sticker"
	}
	return "draw"
}

// Tool is the brush/sticker configuration new drawables are built from.
// Changing it never touches drawables already in the log.
type Tool struct {
	Mode        Mode
	Thickness   float64
	Color       color.NRGBA
	Glyph       string
	StickerSize float64
}

// Options configures a new Session.
type Options struct {
	Thickness   float64
	StickerSize float64
	Stickers    []string

	// Hue returns a hue in [0, 360) for each brush selection. Nil uses
	// math/rand.
	Hue func() float64
}

// Session is the complete mutable state behind one drawing canvas: the log,
// the tool, the in-progress stroke or drag and the cursor preview. Every
// inbound signal mutates it synchronously and then notifies subscribers, so
// a repaint always follows the change that caused it.
//
// A Session is owned by a single goroutine and is not safe for concurrent use.
type Session struct {
	drawing  *Drawing
	tool     Tool
	stickers *StickerSet
	hue      func() float64

	stroke  *Stroke
	dragged *Sticker
	preview Drawable

	subscribers []func(Signal)
}

// NewSession returns a session in draw mode with a random brush color.
func NewSession(opts Options) *Session {
	if opts.Thickness <= 0 {
		opts.Thickness = 2
	}
	if opts.StickerSize <= 0 {
		opts.StickerSize = DefaultStickerSize
	}
	if opts.Stickers == nil {
		opts.Stickers = BuiltinStickers
	}
	if opts.Hue == nil {
		opts.Hue = func() float64 { return float64(rand.IntN(360)) }
	}

	s := &Session{
		drawing:  NewDrawing(),
		stickers: NewStickerSet(opts.Stickers...),
		hue:      opts.Hue,
	}
	s.tool = Tool{
		Mode:        ModeDraw,
		Thickness:   opts.Thickness,
		Color:       s.randomColor(),
		StickerSize: opts.StickerSize,
	}
	s.drawing.OnChange = func() { s.emit(ContentChanged) }
	return s
}

func (s *Session) randomColor() color.NRGBA {
	return color.NRGBAModel.Convert(gg.HSL(s.hue(), 0.8, 0.5).Color()).(color.NRGBA)
}

// Subscribe registers fn for every signal the session emits.
func (s *Session) Subscribe(fn func(Signal)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) emit(sig Signal) {
	for _, fn := range s.subscribers {
		fn(sig)
	}
}

// Drawing exposes the log, mainly for export and inspection.
func (s *Session) Drawing() *Drawing { return s.drawing }

// Tool returns the current tool configuration.
func (s *Session) Tool() Tool { return s.tool }

// Stickers is the glyph palette.
func (s *Session) Stickers() *StickerSet { return s.stickers }

// Preview returns the current cursor preview, or nil.
func (s *Session) Preview() Drawable { return s.preview }

// Active reports whether a stroke or sticker drag is in progress.
func (s *Session) Active() bool {
	return s.stroke != nil || s.dragged != nil
}

// PointerDown starts a stroke, picks up the topmost sticker under the
// pointer, or places a new sticker, depending on the tool.
func (s *Session) PointerDown(x, y float64) {
	at := Point{X: x, Y: y}
	switch s.tool.Mode {
	case ModeDraw:
		s.stroke = newStroke(at, s.tool.Thickness, s.tool.Color)
		logger().Debug("stroke started", slog.String("id", s.stroke.ID))
		s.drawing.Append(s.stroke)
	case ModeSticker:
		if s.tool.Glyph == "" {
			return
		}
		if hit := s.drawing.TopStickerAt(x, y); hit != nil {
			s.dragged = hit
			logger().Debug("sticker picked up", slog.String("id", hit.ID))
			return
		}
		st := newSticker(s.tool.Glyph, at, s.tool.StickerSize)
		logger().Debug("sticker placed", slog.String("id", st.ID), slog.String("glyph", st.Glyph))
		s.drawing.Append(st)
	}
}

// PointerMove extends the active stroke, drags the held sticker, or moves
// the preview.
func (s *Session) PointerMove(x, y float64) {
	at := Point{X: x, Y: y}
	switch {
	case s.stroke != nil:
		s.stroke.addPoint(at)
		s.emit(ContentChanged)
	case s.dragged != nil:
		s.dragged.MoveTo(x, y)
		s.emit(ContentChanged)
	case s.tool.Mode == ModeDraw:
		s.preview = &BrushPreview{At: at, Thickness: s.tool.Thickness, Color: s.tool.Color}
		s.emit(PreviewChanged)
	case s.tool.Mode == ModeSticker && s.tool.Glyph != "":
		s.preview = &StickerPreview{At: at, Glyph: s.tool.Glyph, Size: s.tool.StickerSize}
		s.emit(PreviewChanged)
	}
}

// PointerUp freezes the active stroke or drag.
func (s *Session) PointerUp() {
	s.release()
	s.emit(ContentChanged)
}

// PointerLeave ends the active stroke or drag early and hides the preview.
func (s *Session) PointerLeave() {
	s.release()
	s.preview = nil
	s.emit(ContentChanged)
}

func (s *Session) release() {
	if s.stroke != nil {
		logger().Debug("stroke finished", slog.String("id", s.stroke.ID), slog.Int("points", len(s.stroke.Points)))
	}
	s.stroke = nil
	s.dragged = nil
}

// SelectBrush switches to draw mode with the given thickness and a fresh
// random color.
func (s *Session) SelectBrush(thickness float64) {
	if thickness <= 0 {
		return
	}
	s.tool.Mode = ModeDraw
	s.tool.Thickness = thickness
	s.tool.Color = s.randomColor()
	s.emit(PreviewChanged)
}

// SelectSticker switches to sticker mode placing glyph.
func (s *Session) SelectSticker(glyph string) {
	s.tool.Mode = ModeSticker
	s.tool.Glyph = glyph
	s.emit(PreviewChanged)
}

// AddCustomSticker adds glyph to the palette. Blank input is ignored.
func (s *Session) AddCustomSticker(glyph string) bool {
	return s.stickers.Add(glyph)
}

// Undo removes the newest log entry.
func (s *Session) Undo() { s.drawing.Undo() }

// Redo restores the newest undone entry.
func (s *Session) Redo() { s.drawing.Redo() }

// Clear wipes the log and the redo stack.
func (s *Session) Clear() { s.drawing.Clear() }

// Repaint replays the log onto surface, then the preview when nothing is
// being drawn or dragged. The preview never enters the log.
func (s *Session) Repaint(surface *render.Surface) {
	s.drawing.Render(surface)
	if !s.Active() && s.preview != nil {
		s.preview.Render(surface)
	}
}
