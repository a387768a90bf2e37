package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
)

// BoardWidget is the drawing canvas. It turns pointer events into session
// signals and repaints the live surface whenever the session reports a change.
type BoardWidget struct {
	widget.BaseWidget

	session *state.Session
	live    *render.Surface
	image   *canvas.Image
	size    fyne.Size

	// OnSignal runs after each repaint, e.g. to refresh a status line.
	OnSignal func(state.Signal)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(session *state.Session, live *render.Surface) *BoardWidget {
	b := &BoardWidget{
		session: session,
		live:    live,
		size:    fyne.NewSize(float32(live.Width()), float32(live.Height())),
	}
	b.image = canvas.NewImageFromImage(live.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScalePixels
	b.ExtendBaseWidget(b)

	session.Subscribe(b.repaint)
	session.Repaint(live)
	return b
}

func (b *BoardWidget) repaint(sig state.Signal) {
	b.session.Repaint(b.live)
	b.image.Image = b.live.Image()
	b.image.Refresh()
	if b.OnSignal != nil {
		b.OnSignal(sig)
	}
}

func toCanvas(p fyne.Position) (float64, float64) {
	return float64(p.X), float64(p.Y)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.PointerDown(toCanvas(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.PointerUp()
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.session.PointerMove(toCanvas(e.Position))
}

// Dragged arrives instead of MouseMoved while the button is held.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.session.PointerMove(toCanvas(e.Position))
}

func (b *BoardWidget) DragEnd() {
	if b.session.Active() {
		b.session.PointerUp()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {
	b.session.PointerLeave()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
	}
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image}
}

// Layout pins the surface to the top-left corner at its logical size so
// pointer positions map 1:1 onto canvas coordinates.
func (r *boardWidgetRenderer) Layout(fyne.Size) {
	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(r.board.size)
	r.board.image.Move(fyne.NewPos(0, 0))
	r.board.image.Resize(r.board.size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.board.size
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
