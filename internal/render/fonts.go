package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"fyne.io/fyne/v2/theme"
	gtrender "github.com/go-text/render"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Fonts hands out glyph faces for sticker rendering. Text runes come from the
// primary source; pictographs fall back to the bundled color emoji font. A
// single Fonts backs every surface and is safe for concurrent use.
type Fonts struct {
	source *text.FontSource
	emoji  *font.Face

	mu    sync.Mutex
	faces map[float64]text.Face

	// guards the emoji face's lookup caches
	emojiMu sync.Mutex
}

// LoadFonts reads the primary font at path. An empty path selects the
// embedded Go Regular face.
func LoadFonts(path string) (*Fonts, error) {
	if path == "" {
		return DefaultFonts()
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	return withEmoji(src)
}

// DefaultFonts returns fonts backed by Go Regular plus the emoji fallback.
func DefaultFonts() (*Fonts, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load fallback font: %w", err)
	}
	return withEmoji(src)
}

func withEmoji(src *text.FontSource) (*Fonts, error) {
	emoji, err := loadEmojiFace()
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return &Fonts{
		source: src,
		emoji:  emoji,
		faces:  make(map[float64]text.Face),
	}, nil
}

// loadEmojiFace parses the emoji font fyne ships with. Builds without it
// get nil and render text faces only.
func loadEmojiFace() (*font.Face, error) {
	res := theme.DefaultEmojiFont()
	if res == nil {
		return nil, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(res.Content()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", res.Name(), err)
	}
	return face, nil
}

// Face returns the primary face for size pixels.
func (f *Fonts) Face(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.source.Face(size)
	f.faces[size] = face
	return face
}

// Name reports the primary font family.
func (f *Fonts) Name() string {
	return f.source.Name()
}

// HasEmoji reports whether the color emoji fallback is loaded.
func (f *Fonts) HasEmoji() bool {
	return f.emoji != nil
}

func (f *Fonts) Close() error {
	f.mu.Lock()
	f.faces = make(map[float64]text.Face)
	f.mu.Unlock()
	return f.source.Close()
}

// run is a stretch of s drawn with one face.
type run struct {
	text  string
	emoji bool
}

// joiner reports format characters that only make sense inside an emoji
// sequence: ZWJ and the variation selectors.
func joiner(r rune) bool {
	return r == 0x200D || r == 0xFE0E || r == 0xFE0F
}

// split cuts s into runs. Runes below General Punctuation always use the
// primary face; above it the emoji face wins when it has the glyph. Joiners
// outside an emoji run are dropped so they never draw as missing glyphs.
func (f *Fonts) split(s string) []run {
	var (
		runs []run
		cur  strings.Builder
		mode bool
	)
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, run{text: cur.String(), emoji: mode})
			cur.Reset()
		}
	}
	for _, r := range s {
		if joiner(r) {
			if mode && cur.Len() > 0 {
				cur.WriteRune(r)
			}
			continue
		}
		isEmoji := false
		if f.emoji != nil && r >= 0x2000 {
			_, isEmoji = f.emoji.NominalGlyph(r)
		}
		if isEmoji != mode {
			flush()
			mode = isEmoji
		}
		cur.WriteRune(r)
	}
	flush()
	return runs
}

func (f *Fonts) shapeEmoji(s string, size float64) shaping.Output {
	rs := []rune(s)
	var shaper shaping.HarfbuzzShaper
	return shaper.Shape(shaping.Input{
		Text:      rs,
		RunStart:  0,
		RunEnd:    len(rs),
		Direction: di.DirectionLTR,
		Face:      f.emoji,
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Common,
	})
}

// Draw renders s centred on (cx, cy) in device pixels at size pixels. Emoji
// runs keep their own colors; col only sets their opacity.
func (f *Fonts) Draw(dst draw.Image, s string, cx, cy, size float64, col color.Color) {
	f.emojiMu.Lock()
	defer f.emojiMu.Unlock()

	runs := f.split(s)
	if len(runs) == 0 {
		return
	}
	face := f.Face(size)

	shaped := make([]shaping.Output, len(runs))
	widths := make([]float64, len(runs))
	total := 0.0
	for i, r := range runs {
		if r.emoji {
			shaped[i] = f.shapeEmoji(r.text, size)
			widths[i] = float64(shaped[i].Advance) / 64
		} else {
			widths[i] = face.Advance(r.text)
		}
		total += widths[i]
	}

	m := face.Metrics()
	baseline := cy + (m.Ascent-m.Descent)/2
	x := cx - total/2

	target := dst
	var layer *image.RGBA
	_, _, _, a := col.RGBA()
	if a < 0xffff {
		layer = image.NewRGBA(dst.Bounds())
		target = layer
	}

	for i, r := range runs {
		if r.emoji {
			pen := &gtrender.Renderer{FontSize: float32(size), PixScale: 1, Color: color.Black}
			pen.DrawShapedRunAt(shaped[i], target, int(x), int(baseline))
		} else {
			text.DrawWithEmoji(dst, r.text, face, x, baseline, col)
		}
		x += widths[i]
	}

	if layer != nil {
		mask := image.NewUniform(color.Alpha16{A: uint16(a)})
		draw.DrawMask(dst, dst.Bounds(), layer, dst.Bounds().Min, mask, image.Point{}, draw.Over)
	}
}
