package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"StickerSketch/internal/config"
	"StickerSketch/internal/export"
	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
)

const (
	writeWait       = 10 * time.Second
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second
)

// Server exposes sketch sessions over websocket. Every connection gets a
// private session and live surface; messages on a connection are applied in
// arrival order on that connection's goroutine.
type Server struct {
	cfg      config.Config
	fonts    *render.Fonts
	exporter *export.Exporter
	hub      *Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(cfg config.Config, fonts *render.Fonts, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "net"))
	return &Server{
		cfg:      cfg,
		fonts:    fonts,
		exporter: export.New(cfg, fonts),
		hub:      NewHub(log),
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}
}

// Hub returns the connection registry.
func (s *Server) Hub() *Hub { return s.hub }

// Handler routes /ws to the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("shutdown", slog.Any("err", err))
		}
	}()

	s.log.Info("listening", slog.String("addr", s.cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.cfg.Server.Addr, err)
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", slog.Any("err", err))
		return
	}
	id := uuid.NewString()
	s.hub.Add(id, conn)
	defer s.hub.Remove(id)
	defer conn.Close()

	c, err := s.newClient(id, conn)
	if err != nil {
		s.log.Error("start session", slog.String("id", id), slog.Any("err", err))
		return
	}
	defer func() { _ = c.live.Close() }()

	if err := c.run(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.log.Info("session ended", slog.Any("err", err))
	}
}

// client is the state behind one websocket connection.
type client struct {
	conn     *websocket.Conn
	session  *state.Session
	live     *render.Surface
	exporter *export.Exporter
	log      *slog.Logger
	pending  []state.Signal
}

func (s *Server) newClient(id string, conn *websocket.Conn) (*client, error) {
	live, err := render.NewSurface(s.cfg.Canvas.Width, s.cfg.Canvas.Height, 1, s.fonts)
	if err != nil {
		return nil, err
	}
	c := &client{
		conn: conn,
		session: state.NewSession(state.Options{
			Thickness:   s.cfg.Brush.Initial,
			StickerSize: s.cfg.Sticker.Size,
			Stickers:    s.cfg.Sticker.Glyphs,
		}),
		live:     live,
		exporter: s.exporter,
		log:      s.log.With(slog.String("id", id)),
	}
	c.session.Subscribe(func(sig state.Signal) {
		c.pending = append(c.pending, sig)
	})
	conn.SetReadLimit(maxMessageSize)
	return c, nil
}

func (c *client) run() error {
	if err := c.writeJSON(Outbound{
		Type:     MsgHello,
		Width:    c.exporter.Width,
		Height:   c.exporter.Height,
		Stickers: c.session.Stickers().Glyphs(),
	}); err != nil {
		return err
	}
	c.session.Repaint(c.live)
	if err := c.writeFrame(); err != nil {
		return err
	}

	for {
		var msg Inbound
		if err := c.conn.ReadJSON(&msg); err != nil {
			return err
		}
		if err := c.dispatch(msg); err != nil {
			return err
		}
		if err := c.flush(); err != nil {
			return err
		}
	}
}

func (c *client) dispatch(msg Inbound) error {
	c.log.Debug("message", slog.String("type", msg.Type))
	s := c.session
	switch msg.Type {
	case MsgDown:
		s.PointerDown(msg.X, msg.Y)
	case MsgMove:
		s.PointerMove(msg.X, msg.Y)
	case MsgUp:
		s.PointerUp()
	case MsgLeave:
		s.PointerLeave()
	case MsgBrush:
		if msg.Thickness <= 0 {
			return c.writeError("brush thickness must be positive")
		}
		s.SelectBrush(msg.Thickness)
	case MsgSticker:
		s.SelectSticker(msg.Glyph)
	case MsgCustom:
		s.AddCustomSticker(msg.Glyph)
		return c.writeJSON(Outbound{
			Type:     MsgStickers,
			Items:    s.Drawing().Len(),
			Redo:     s.Drawing().RedoLen(),
			Stickers: s.Stickers().Glyphs(),
		})
	case MsgClear:
		s.Clear()
	case MsgUndo:
		s.Undo()
	case MsgRedo:
		s.Redo()
	case MsgExport:
		return c.export(msg.Format)
	default:
		return c.writeError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return nil
}

func (c *client) export(format string) error {
	name := c.exporter.Filename
	if strings.EqualFold(format, "pdf") {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
	}
	var buf bytes.Buffer
	if err := c.exporter.Write(&buf, name, c.session.Drawing()); err != nil {
		c.log.Error("export failed", slog.Any("err", err))
		return c.writeError("export failed")
	}
	if err := c.writeJSON(Outbound{
		Type:     MsgExport,
		Items:    c.session.Drawing().Len(),
		Redo:     c.session.Drawing().RedoLen(),
		Filename: name,
	}); err != nil {
		return err
	}
	return c.writeBinary(buf.Bytes())
}

// flush repaints once per queued signal and sends each one with its frame.
func (c *client) flush() error {
	pending := c.pending
	c.pending = nil
	for _, sig := range pending {
		c.session.Repaint(c.live)
		if err := c.writeJSON(Outbound{
			Type:   MsgSignal,
			Signal: sig.String(),
			Items:  c.session.Drawing().Len(),
			Redo:   c.session.Drawing().RedoLen(),
		}); err != nil {
			return err
		}
		if err := c.writeFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (c *client) writeFrame() error {
	var buf bytes.Buffer
	if err := c.live.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return c.writeBinary(buf.Bytes())
}

func (c *client) writeJSON(v Outbound) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) writeBinary(data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *client) writeError(text string) error {
	return c.writeJSON(Outbound{
		Type:  MsgError,
		Items: c.session.Drawing().Len(),
		Redo:  c.session.Drawing().RedoLen(),
		Error: text,
	})
}
