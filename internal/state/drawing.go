package state

import (
	"log/slog"

	"StickerSketch/internal/render"
)

// Drawing is the ordered log of committed drawables and the redo stack fed by
// Undo. The log is the artwork: rendering it means clearing a surface and
// replaying every entry in order.
//
// A Drawing is owned by a single goroutine and is not safe for concurrent use.
type Drawing struct {
	items []Command
	redo  []Command

	// OnChange runs after every mutation that alters what Render produces.
	OnChange func()
}

// NewDrawing returns an empty drawing.
func NewDrawing() *Drawing {
	return &Drawing{
		items: make([]Command, 0),
		redo:  make([]Command, 0),
	}
}

func (d *Drawing) changed() {
	if d.OnChange != nil {
		d.OnChange()
	}
}

// Append pushes d onto the end of the log. The redo stack is left alone, so
// a later Redo lands after the new entry.
func (d *Drawing) Append(item Command) {
	d.items = append(d.items, item)
	logger().Debug("drawing append", slog.Int("items", len(d.items)), slog.Int("redo", len(d.redo)))
	d.changed()
}

// Undo moves the newest entry onto the redo stack. It reports false and does
// nothing when the log is empty.
func (d *Drawing) Undo() bool {
	n := len(d.items)
	if n == 0 {
		return false
	}
	last := d.items[n-1]
	d.items[n-1] = nil
	d.items = d.items[:n-1]
	d.redo = append(d.redo, last)
	logger().Debug("drawing undo", slog.Int("items", len(d.items)), slog.Int("redo", len(d.redo)))
	d.changed()
	return true
}

// Redo moves the newest redo entry back to the end of the log. It reports
// false and does nothing when the redo stack is empty.
func (d *Drawing) Redo() bool {
	n := len(d.redo)
	if n == 0 {
		return false
	}
	last := d.redo[n-1]
	d.redo[n-1] = nil
	d.redo = d.redo[:n-1]
	d.items = append(d.items, last)
	logger().Debug("drawing redo", slog.Int("items", len(d.items)), slog.Int("redo", len(d.redo)))
	d.changed()
	return true
}

// Clear discards the log and the redo stack.
func (d *Drawing) Clear() {
	d.items = make([]Command, 0)
	d.redo = make([]Command, 0)
	logger().Debug("drawing cleared")
	d.changed()
}

// Len is the number of committed entries.
func (d *Drawing) Len() int { return len(d.items) }

// RedoLen is the depth of the redo stack.
func (d *Drawing) RedoLen() int { return len(d.redo) }

// At returns the i-th entry in log order.
func (d *Drawing) At(i int) Command { return d.items[i] }

// Items returns a copy of the log in order.
func (d *Drawing) Items() []Command {
	out := make([]Command, len(d.items))
	copy(out, d.items)
	return out
}

// RedoItems returns a copy of the redo stack, bottom first.
func (d *Drawing) RedoItems() []Command {
	out := make([]Command, len(d.redo))
	copy(out, d.redo)
	return out
}

// TopStickerAt returns the most recently placed sticker containing (x, y),
// or nil.
func (d *Drawing) TopStickerAt(x, y float64) *Sticker {
	for i := len(d.items) - 1; i >= 0; i-- {
		if s, ok := d.items[i].(*Sticker); ok && s.Contains(x, y) {
			return s
		}
	}
	return nil
}

// Render clears surface and replays the log onto it.
func (d *Drawing) Render(surface *render.Surface) {
	surface.Clear()
	for _, item := range d.items {
		item.Render(surface)
	}
}
