package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gogpu/gg"

	"StickerSketch/internal/config"
	sknet "StickerSketch/internal/net"
	"StickerSketch/internal/render"
	"StickerSketch/internal/state"
	"StickerSketch/internal/ui"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		slog.Error("stickersketch", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("stickersketch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	serve := fs.Bool("serve", false, "run the websocket server instead of the desktop window")
	addr := fs.String("addr", "", "listen address for -serve (overrides config)")
	advertise := fs.Bool("mdns", true, "advertise the server on the LAN via mDNS")
	discover := fs.Bool("discover", false, "list sketch servers on the LAN and exit")
	font := fs.String("font", "", "TTF/OTF font used for sticker text (overrides config)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	state.SetLogger(log)
	gg.SetLogger(log)

	if *discover {
		err := sknet.Browse(func(hostport string) {
			log.Info("found sketch server", slog.String("link", "ws://"+hostport+"/ws"))
		})
		if err != nil {
			return fmt.Errorf("mDNS lookup: %w", err)
		}
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "mdns":
			cfg.Server.MDNS = *advertise
		case "font":
			cfg.Font = *font
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	fonts, err := render.LoadFonts(cfg.Font)
	if err != nil {
		return err
	}
	defer func() { _ = fonts.Close() }()
	log.Debug("fonts loaded", slog.String("name", fonts.Name()), slog.Bool("emoji", fonts.HasEmoji()))

	if *serve {
		return runServer(cfg, fonts, log)
	}
	return ui.RunApp(cfg, fonts, log)
}

func runServer(cfg config.Config, fonts *render.Fonts, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := listenPort(cfg.Server.Addr)
	if cfg.Server.MDNS && port > 0 {
		zone, err := sknet.Advertise(port)
		if err != nil {
			log.Warn("mDNS advertisement disabled", slog.Any("err", err))
		} else {
			defer func() { _ = zone.Shutdown() }()
		}
	}

	if ip, err := sknet.GetOutgoingIP(); err == nil && port > 0 {
		log.Info("share this link", slog.String("link", sknet.ShareLink(ip, port)))
	}

	return sknet.NewServer(cfg, fonts, log).ListenAndServe(ctx)
}

func listenPort(addr string) int {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0
	}
	return port
}
