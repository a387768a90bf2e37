package state

import (
	"image/color"
	"testing"
)

var red = color.NRGBA{R: 255, A: 255}

func strokeOf(pts ...Point) *Stroke {
	s := newStroke(pts[0], 2, red)
	for _, p := range pts[1:] {
		s.addPoint(p)
	}
	return s
}

func TestDrawing_UndoRedoScenario(t *testing.T) {
	d := NewDrawing()
	d.Append(strokeOf(Point{1, 1}, Point{2, 2}))
	d.Append(strokeOf(Point{3, 3}, Point{4, 4}))

	steps := []struct {
		name      string
		op        func() bool
		wantItems int
		wantRedo  int
	}{
		{"first undo", d.Undo, 1, 1},
		{"second undo", d.Undo, 0, 2},
		{"redo", d.Redo, 1, 1},
	}
	for _, step := range steps {
		if !step.op() {
			t.Fatalf("%s: reported no-op", step.name)
		}
		if d.Len() != step.wantItems || d.RedoLen() != step.wantRedo {
			t.Errorf("%s: Len() = %d, RedoLen() = %d, want %d, %d",
				step.name, d.Len(), d.RedoLen(), step.wantItems, step.wantRedo)
		}
	}
}

func TestDrawing_EmptyNoops(t *testing.T) {
	d := NewDrawing()
	calls := 0
	d.OnChange = func() { calls++ }

	if d.Undo() {
		t.Error("Undo() on empty log = true, want false")
	}
	if d.Redo() {
		t.Error("Redo() on empty redo stack = true, want false")
	}
	if calls != 0 {
		t.Errorf("OnChange called %d times for no-ops, want 0", calls)
	}
}

func TestPreviewsAreNotCommands(t *testing.T) {
	previews := []Drawable{
		&BrushPreview{Thickness: 2},
		&StickerPreview{Glyph: "🤡", Size: DefaultStickerSize},
	}
	for _, p := range previews {
		if _, ok := p.(Command); ok {
			t.Errorf("%T satisfies Command, want preview-only", p)
		}
	}
	for _, c := range []Drawable{&Stroke{}, &Sticker{}} {
		if _, ok := c.(Command); !ok {
			t.Errorf("%T does not satisfy Command", c)
		}
	}
}

func TestDrawing_UndoThenRedoRestores(t *testing.T) {
	d := NewDrawing()
	a := strokeOf(Point{0, 0}, Point{1, 1})
	b := &Sticker{ID: "b", Glyph: "x", X: 5, Y: 5, Size: 24}
	c := strokeOf(Point{2, 2}, Point{3, 3})
	d.Append(a)
	d.Append(b)
	d.Append(c)
	before := d.Items()

	d.Undo()
	d.Redo()

	after := d.Items()
	if len(after) != len(before) {
		t.Fatalf("Len() = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("item %d changed after undo/redo", i)
		}
	}
	if d.RedoLen() != 0 {
		t.Errorf("RedoLen() = %d, want 0", d.RedoLen())
	}
}

func TestDrawing_ClearEmptiesBoth(t *testing.T) {
	d := NewDrawing()
	d.Append(strokeOf(Point{0, 0}, Point{1, 1}))
	d.Append(strokeOf(Point{0, 0}, Point{1, 1}))
	d.Undo()

	calls := 0
	d.OnChange = func() { calls++ }
	d.Clear()

	if d.Len() != 0 || d.RedoLen() != 0 {
		t.Fatalf("after Clear: Len() = %d, RedoLen() = %d", d.Len(), d.RedoLen())
	}
	if calls != 1 {
		t.Errorf("OnChange calls = %d, want 1", calls)
	}
	if d.Undo() || d.Redo() {
		t.Error("Undo/Redo after Clear should be no-ops")
	}
}

func TestDrawing_RedoAppendsAtEnd(t *testing.T) {
	d := NewDrawing()
	a := strokeOf(Point{0, 0}, Point{1, 1})
	b := strokeOf(Point{2, 2}, Point{3, 3})
	c := strokeOf(Point{4, 4}, Point{5, 5})

	d.Append(a)
	d.Append(b)
	d.Undo()
	d.Append(c)
	d.Redo()

	got := d.Items()
	want := []Command{a, c, b}
	if len(got) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d out of order", i)
		}
	}
}

func TestDrawing_TopStickerAt(t *testing.T) {
	d := NewDrawing()
	low := &Sticker{ID: "low", Glyph: "a", X: 10, Y: 10, Size: 24}
	high := &Sticker{ID: "high", Glyph: "b", X: 14, Y: 10, Size: 24}
	d.Append(low)
	d.Append(strokeOf(Point{10, 10}, Point{20, 20}))
	d.Append(high)

	tests := []struct {
		name   string
		x, y   float64
		wantID string
	}{
		{"overlap picks newest", 12, 10, "high"},
		{"only lower", 0, 10, "low"},
		{"miss", 50, 50, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.TopStickerAt(tt.x, tt.y)
			switch {
			case tt.wantID == "" && got != nil:
				t.Errorf("TopStickerAt() = %s, want nil", got.ID)
			case tt.wantID != "" && (got == nil || got.ID != tt.wantID):
				t.Errorf("TopStickerAt() = %v, want %s", got, tt.wantID)
			}
		})
	}
}

func TestDrawing_RenderIsOrderedReplay(t *testing.T) {
	a := strokeOf(Point{5, 5}, Point{50, 50})
	b := &Stroke{ID: "b", Points: []Point{{5, 50}, {50, 5}}, Thickness: 6, Color: color.NRGBA{B: 255, A: 255}}

	d := NewDrawing()
	d.Append(a)
	d.Append(b)

	viaLog := newTestSurface(t, 1)
	d.Render(viaLog)

	manual := newTestSurface(t, 1)
	manual.Clear()
	a.Render(manual)
	b.Render(manual)

	if !equalPixels(snapshot(viaLog.Image()), snapshot(manual.Image())) {
		t.Error("log render differs from rendering each entry in insertion order")
	}
}

func TestDrawing_RenderIsIdempotent(t *testing.T) {
	d := NewDrawing()
	d.Append(strokeOf(Point{5, 5}, Point{30, 40}, Point{60, 10}))

	s := newTestSurface(t, 1)
	d.Render(s)
	first := snapshot(s.Image())
	d.Render(s)
	d.Render(s)

	if !equalPixels(first, snapshot(s.Image())) {
		t.Error("repeated Render produced different output")
	}
}

func TestStroke_Render(t *testing.T) {
	t.Run("single point draws nothing", func(t *testing.T) {
		s := newTestSurface(t, 1)
		s.Clear()
		strokeOf(Point{10, 10}).Render(s)
		if n := inked(s.Image()); n != 0 {
			t.Errorf("inked pixels = %d, want 0", n)
		}
	})

	t.Run("two points draw a segment", func(t *testing.T) {
		s := newTestSurface(t, 1)
		s.Clear()
		strokeOf(Point{10, 10}, Point{20, 10}).Render(s)
		img := s.Image()
		if alphaAt(img, 15, 10) == 0 {
			t.Error("no ink on the segment midpoint")
		}
		if alphaAt(img, 40, 40) != 0 {
			t.Error("ink far away from the segment")
		}
	})
}

func TestSticker_Contains(t *testing.T) {
	s := &Sticker{X: 50, Y: 50, Size: 24}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centre", 50, 50, true},
		{"boundary right", 62, 50, true},
		{"boundary top", 50, 38, true},
		{"just outside", 62.0001, 50, false},
		{"far", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSticker_ContainsFollowsMove(t *testing.T) {
	s := &Sticker{X: 50, Y: 50, Size: 24}
	s.MoveTo(80, 80)

	if s.Contains(50, 50) {
		t.Error("Contains() still matches the old position")
	}
	if !s.Contains(92, 80) {
		t.Error("Contains() misses the boundary of the new position")
	}
}
