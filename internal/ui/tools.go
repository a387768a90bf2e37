package ui

import (
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"StickerSketch/internal/config"
	"StickerSketch/internal/export"
	"StickerSketch/internal/state"
)

// Toolbar holds the action buttons, brush presets and sticker bar for one
// board. Exactly one tool button is highlighted at a time.
type Toolbar struct {
	board    *BoardWidget
	session  *state.Session
	exporter *export.Exporter
	win      fyne.Window
	log      *slog.Logger

	tools      []*widget.Button
	stickerBar *fyne.Container
	selected   string
}

func NewToolbar(board *BoardWidget, exporter *export.Exporter, cfg config.Config, win fyne.Window, log *slog.Logger) *Toolbar {
	if log == nil {
		log = slog.Default()
	}
	t := &Toolbar{
		board:      board,
		session:    board.session,
		exporter:   exporter,
		win:        win,
		log:        log,
		stickerBar: container.NewHBox(),
	}

	t.toolButton("Fine Brush", func() { t.session.SelectBrush(cfg.Brush.Fine) })
	t.toolButton("Bold Brush", func() { t.session.SelectBrush(cfg.Brush.Bold) })
	t.selected = "Fine Brush"

	t.renderStickerButtons()
	return t
}

// toolButton creates a button that highlights itself when tapped.
func (t *Toolbar) toolButton(label string, selectFn func()) *widget.Button {
	btn := widget.NewButton(label, nil)
	btn.OnTapped = func() {
		t.highlight(label)
		selectFn()
	}
	t.tools = append(t.tools, btn)
	return btn
}

func (t *Toolbar) highlight(label string) {
	t.selected = label
	for _, b := range t.tools {
		if b.Text == label {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}
}

// renderStickerButtons rebuilds the sticker bar from the session palette.
func (t *Toolbar) renderStickerButtons() {
	brushes := t.tools[:2]
	t.tools = append([]*widget.Button(nil), brushes...)

	objects := make([]fyne.CanvasObject, 0, t.session.Stickers().Len())
	for _, glyph := range t.session.Stickers().Glyphs() {
		g := glyph
		objects = append(objects, t.toolButton(g, func() { t.session.SelectSticker(g) }))
	}
	t.stickerBar.Objects = objects
	t.highlight(t.selected)
	t.stickerBar.Refresh()
}

func (t *Toolbar) addSticker() {
	entry := widget.NewEntry()
	entry.SetText("💜")
	dialog.ShowForm("Add Emoji", "Add", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Emoji", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if t.session.AddCustomSticker(entry.Text) {
				t.renderStickerButtons()
			}
		}, t.win)
}

func (t *Toolbar) exportAs(filename string) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				t.log.Warn("close export", slog.Any("err", err))
			}
		}()
		name := writer.URI().Name()
		if err := t.exporter.Write(writer, name, t.session.Drawing()); err != nil {
			t.log.Error("export failed", slog.String("file", name), slog.Any("err", err))
			dialog.ShowError(err, t.win)
			return
		}
		t.log.Info("exported", slog.String("file", writer.URI().String()))
	}, t.win)
	save.SetFileName(filename)
	save.Show()
}

// Top is the action row: history controls and brush presets.
func (t *Toolbar) Top() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("🧽 Clear", t.session.Clear),
		widget.NewButton("↩️ Undo", t.session.Undo),
		widget.NewButton("↪️ Redo", t.session.Redo),
		widget.NewSeparator(),
		t.tools[0],
		t.tools[1],
	)
}

// Bottom is the sticker bar plus the utility buttons.
func (t *Toolbar) Bottom() fyne.CanvasObject {
	pdfName := strings.TrimSuffix(t.exporter.Filename, filepath.Ext(t.exporter.Filename)) + ".pdf"
	return container.NewVBox(
		container.NewHScroll(t.stickerBar),
		container.NewHBox(
			widget.NewButton("➕ Add Emoji", t.addSticker),
			widget.NewButton("📤 Export", func() { t.exportAs(t.exporter.Filename) }),
			widget.NewButton("📄 Export PDF", func() { t.exportAs(pdfName) }),
		),
	)
}
