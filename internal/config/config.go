// Package config loads StickerSketch settings from an optional TOML file
// layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Export struct {
	Scale    int    `toml:"scale"`
	Filename string `toml:"filename"`
}

type Brush struct {
	Initial float64 `toml:"initial"`
	Fine    float64 `toml:"fine"`
	Bold    float64 `toml:"bold"`
}

type Sticker struct {
	Size   float64  `toml:"size"`
	Glyphs []string `toml:"glyphs"`
}

type Server struct {
	Addr string `toml:"addr"`
	MDNS bool   `toml:"mdns"`
}

// Config is the full settings tree.
type Config struct {
	Font    string  `toml:"font"`
	Canvas  Canvas  `toml:"canvas"`
	Export  Export  `toml:"export"`
	Brush   Brush   `toml:"brush"`
	Sticker Sticker `toml:"sticker"`
	Server  Server  `toml:"server"`
}

// Default returns the settings of the stock 256x256 sketch pad.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 256, Height: 256},
		Export: Export{Scale: 4, Filename: "stickerSketch.png"},
		Brush:  Brush{Initial: 2, Fine: 1, Bold: 10},
		Sticker: Sticker{
			Size:   24,
			Glyphs: []string{"🤡", "🤩", "🏃‍♀️💨"},
		},
		Server: Server{Addr: ":8888", MDNS: true},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks the values a session or exporter cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Export.Scale < 1:
		return fmt.Errorf("%w: export scale must be at least 1, got %d", ErrInvalid, c.Export.Scale)
	case strings.TrimSpace(c.Export.Filename) == "":
		return fmt.Errorf("%w: export filename is empty", ErrInvalid)
	case c.Brush.Initial <= 0 || c.Brush.Fine <= 0 || c.Brush.Bold <= 0:
		return fmt.Errorf("%w: brush sizes must be positive", ErrInvalid)
	case c.Sticker.Size <= 0:
		return fmt.Errorf("%w: sticker size must be positive, got %v", ErrInvalid, c.Sticker.Size)
	}
	if ext := strings.ToLower(filepath.Ext(c.Export.Filename)); ext != ".png" && ext != ".pdf" {
		return fmt.Errorf("%w: export filename must end in .png or .pdf, got %q", ErrInvalid, c.Export.Filename)
	}
	return nil
}
