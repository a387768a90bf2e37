// Package export replays a drawing onto an offscreen, upscaled surface and
// encodes the result for download.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"StickerSketch/internal/config"
	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
)

// Exporter renders drawings at Scale times the live canvas size. Exports
// never see the cursor preview and never modify the drawing.
type Exporter struct {
	Width    int
	Height   int
	Scale    int
	Filename string
	Fonts    *render.Fonts
}

// New builds an exporter from cfg.
func New(cfg config.Config, fonts *render.Fonts) *Exporter {
	return &Exporter{
		Width:    cfg.Canvas.Width,
		Height:   cfg.Canvas.Height,
		Scale:    cfg.Export.Scale,
		Filename: cfg.Export.Filename,
		Fonts:    fonts,
	}
}

func (e *Exporter) rasterize(d *state.Drawing) (*render.Surface, error) {
	s, err := render.NewSurface(e.Width, e.Height, e.Scale, e.Fonts)
	if err != nil {
		return nil, fmt.Errorf("export surface: %w", err)
	}
	d.Render(s)
	return s, nil
}

// WritePNG encodes d as a PNG of (Width*Scale) x (Height*Scale) pixels.
func (e *Exporter) WritePNG(w io.Writer, d *state.Drawing) error {
	s, err := e.rasterize(d)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG returns the encoded PNG.
func (e *Exporter) PNG(d *state.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WritePNG(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes d in the format named by the extension of name.
func (e *Exporter) Write(w io.Writer, name string, d *state.Drawing) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return e.WritePDF(w, d)
	default:
		return e.WritePNG(w, d)
	}
}

// SaveFile writes d to dir/Filename and returns the path.
func (e *Exporter) SaveFile(dir string, d *state.Drawing) (string, error) {
	path := filepath.Join(dir, e.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := e.Write(f, e.Filename, d); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
