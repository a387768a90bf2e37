package state

import "strings"

// BuiltinStickers are the glyphs offered before any custom entry.
var BuiltinStickers = []string{"🤡", "🤩", "🏃‍♀️💨"}

// StickerSet is the ordered palette of glyphs a user can pick from.
type StickerSet struct {
	glyphs []string
}

// NewStickerSet seeds a set with glyphs, skipping blank entries.
func NewStickerSet(glyphs ...string) *StickerSet {
	s := &StickerSet{}
	for _, g := range glyphs {
		s.Add(g)
	}
	return s
}

// Add appends glyph. Blank input is ignored and reported as false.
func (s *StickerSet) Add(glyph string) bool {
	if strings.TrimSpace(glyph) == "" {
		return false
	}
	s.glyphs = append(s.glyphs, glyph)
	return true
}

// Glyphs returns the palette in insertion order.
func (s *StickerSet) Glyphs() []string {
	out := make([]string, len(s.glyphs))
	copy(out, s.glyphs)
	return out
}

func (s *StickerSet) Len() int { return len(s.glyphs) }
