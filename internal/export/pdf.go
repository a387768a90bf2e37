package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"StickerSketch/internal/state"
)

const pdfImageName = "sketch"

// WritePDF wraps the exported raster in a one-page PDF sized to the logical
// canvas, one point per canvas pixel. The page holds the bitmap only.
func (e *Exporter) WritePDF(w io.Writer, d *state.Drawing) error {
	var raster bytes.Buffer
	if err := e.WritePNG(&raster, d); err != nil {
		return err
	}

	wd, ht := float64(e.Width), float64(e.Height)
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(pdfImageName, opts, &raster)
	p.ImageOptions(pdfImageName, 0, 0, wd, ht, false, opts, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
