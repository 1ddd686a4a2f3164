package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askervik/stevedore/internal/tui"
	"github.com/askervik/stevedore/internal/watch"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	fs := flag.NewFlagSet("stevedore", flag.ExitOnError)
	configPath := fs.String("config", tui.DefaultConfigPath(), "path to config file")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("stevedore " + version)
		return
	}

	cfg, err := tui.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Engine event watching is best-effort: without it the dashboard
	// still refreshes on its timer.
	var changed chan struct{}
	if cfg.Watch {
		w, err := watch.New()
		if err != nil {
			slog.Warn("engine event watching disabled", "error", err)
		} else {
			defer w.Close()
			changed = make(chan struct{}, 1)
			go w.Run(ctx, changed)
		}
	}

	p := tea.NewProgram(tui.NewApp(cfg, changed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("tui stopped with error", "error", err)
		os.Exit(1)
	}
}

// setupLogging routes slog away from the terminal, which bubbletea
// owns. Without a log file, logs are discarded.
func setupLogging(cfg *tui.Config) {
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			w = f
		}
	}

	level := slog.LevelWarn
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
