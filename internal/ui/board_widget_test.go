package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"StickerSketch/internal/config"
	"StickerSketch/internal/export"
	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	live, err := render.NewSurface(64, 64, 1, nil)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	t.Cleanup(func() { _ = live.Close() })

	session := state.NewSession(state.Options{Hue: func() float64 { return 200 }})
	return NewBoardWidget(session, live)
}

func primary(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestBoardWidget_DrawsStroke(t *testing.T) {
	b := newTestBoard(t)
	var signals []state.Signal
	b.OnSignal = func(sig state.Signal) { signals = append(signals, sig) }

	b.MouseDown(primary(10, 10))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 10)}})
	b.MouseUp(primary(20, 10))
	b.DragEnd()

	d := b.session.Drawing()
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	st := d.At(0).(*state.Stroke)
	if len(st.Points) != 2 || st.Points[1] != (state.Point{X: 20, Y: 10}) {
		t.Errorf("Points = %v", st.Points)
	}
	if len(signals) != 3 {
		t.Errorf("signals = %v, want 3", signals)
	}
	if _, _, _, a := b.live.Image().At(15, 10).RGBA(); a == 0 {
		t.Error("live surface was not repainted")
	}
}

func TestBoardWidget_IgnoresSecondaryButton(t *testing.T) {
	b := newTestBoard(t)
	ev := primary(5, 5)
	ev.Button = desktop.MouseButtonSecondary

	b.MouseDown(ev)

	if b.session.Drawing().Len() != 0 {
		t.Error("secondary click started a stroke")
	}
}

func TestBoardWidget_HoverPreviewAndLeave(t *testing.T) {
	b := newTestBoard(t)

	b.MouseMoved(primary(30, 30))
	if b.session.Preview() == nil {
		t.Fatal("hover did not create a preview")
	}
	b.MouseOut()
	if b.session.Preview() != nil {
		t.Error("preview survived MouseOut")
	}
	if b.session.Drawing().Len() != 0 {
		t.Error("hovering touched the log")
	}
}

func TestToolbar_StickerButtonsFollowPalette(t *testing.T) {
	b := newTestBoard(t)
	cfg := config.Default()
	w := test.NewWindow(b)
	defer w.Close()

	tb := NewToolbar(b, export.New(cfg, nil), cfg, w, nil)
	if got := len(tb.stickerBar.Objects); got != 3 {
		t.Fatalf("sticker buttons = %d, want 3", got)
	}

	b.session.AddCustomSticker("⭐")
	tb.renderStickerButtons()
	if got := len(tb.stickerBar.Objects); got != 4 {
		t.Fatalf("sticker buttons = %d, want 4", got)
	}

	star := tb.stickerBar.Objects[3].(*widget.Button)
	test.Tap(star)
	if tool := b.session.Tool(); tool.Mode != state.ModeSticker || tool.Glyph != "⭐" {
		t.Errorf("Tool() = %+v, want sticker ⭐", tool)
	}
	if star.Importance != widget.HighImportance {
		t.Error("tapped sticker is not highlighted")
	}
	if tb.tools[0].Importance == widget.HighImportance {
		t.Error("brush still highlighted after picking a sticker")
	}
}
