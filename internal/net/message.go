package net

// Inbound message types.
const (
	MsgDown    = "down"
	MsgMove    = "move"
	MsgUp      = "up"
	MsgLeave   = "leave"
	MsgBrush   = "brush"
	MsgSticker = "sticker"
	MsgCustom  = "custom"
	MsgClear   = "clear"
	MsgUndo    = "undo"
	MsgRedo    = "redo"
	MsgExport  = "export"
)

// Outbound message types.
const (
	MsgHello    = "hello"
	MsgSignal   = "signal"
	MsgStickers = "stickers"
	MsgError    = "error"
)

// Inbound is a pointer or tool signal from the remote shell.
type Inbound struct {
	Type      string  `json:"type"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
	Glyph     string  `json:"glyph,omitempty"`
	Format    string  `json:"format,omitempty"`
}

// Outbound tells the remote shell what changed. Signal and export messages
// are followed by one binary websocket frame with the image.
type Outbound struct {
	Type     string   `json:"type"`
	Signal   string   `json:"signal,omitempty"`
	Items    int      `json:"items"`
	Redo     int      `json:"redo"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Stickers []string `json:"stickers,omitempty"`
	Error    string   `json:"error,omitempty"`
}
