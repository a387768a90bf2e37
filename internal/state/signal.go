package state

// Signal tells a shell what kind of repaint a session change needs.
type Signal int

const (
	// ContentChanged means the log differs and a full repaint is due.
	ContentChanged Signal = iota
	// PreviewChanged means only the cursor preview moved.
	PreviewChanged
)

func (s Signal) String() string {
	switch s {
	case ContentChanged:
		return "content-changed"
	case PreviewChanged:
		return "preview-changed"
	default:
		return "unknown"
	}
}
