package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"StickerSketch/internal/config"
	"StickerSketch/internal/export"
	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
)

// RunApp opens the desktop window and blocks until it closes.
func RunApp(cfg config.Config, fonts *render.Fonts, log *slog.Logger) error {
	log = log.With(slog.String("component", "ui"))

	live, err := render.NewSurface(cfg.Canvas.Width, cfg.Canvas.Height, 1, fonts)
	if err != nil {
		return fmt.Errorf("create drawing surface: %w", err)
	}
	defer func() { _ = live.Close() }()

	session := state.NewSession(state.Options{
		Thickness:   cfg.Brush.Initial,
		StickerSize: cfg.Sticker.Size,
		Stickers:    cfg.Sticker.Glyphs,
	})

	myApp := app.New()
	myWindow := myApp.NewWindow("Sticker Sketch")

	board := NewBoardWidget(session, live)
	status := widget.NewLabel("Ready")
	board.OnSignal = func(state.Signal) {
		d := session.Drawing()
		status.SetText(fmt.Sprintf("%d items · %d to redo", d.Len(), d.RedoLen()))
	}

	toolbar := NewToolbar(board, export.New(cfg, fonts), cfg, myWindow, log)

	header := container.NewVBox(widget.NewLabel("🎨 Sketchy Business"), toolbar.Top())
	footer := container.NewVBox(toolbar.Bottom(), status)
	content := container.NewBorder(header, footer, nil, nil, container.NewCenter(board))

	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width)+240, float32(cfg.Canvas.Height)+200))
	log.Info("window ready", slog.Int("width", cfg.Canvas.Width), slog.Int("height", cfg.Canvas.Height))
	myWindow.ShowAndRun()
	return nil
}
