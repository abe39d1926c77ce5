package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"markestedt/rawpaste/config"
	"markestedt/rawpaste/platform"
	"markestedt/rawpaste/systray"
)

// Lets an in-flight keystroke settle before the process exits
const exitGrace = 300 * time.Millisecond

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rawpaste:", err)
		return 1
	}

	// Setup logging
	closeLog, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rawpaste:", err)
		return 1
	}
	defer closeLog.Close()

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath, "debug", cfg.Logging.Debug)

	// Input permissions are required before anything is started
	if err := platform.CheckAccess(); err != nil {
		slog.Error("Missing input permission", "error", err)
		fmt.Fprintln(os.Stderr, "rawpaste:", err)
		return 1
	}

	agent, err := NewAgent(cfg)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		return 1
	}

	tray, err := systray.NewSystrayManager(agent.Coordinator(), agent, agent.MenuInfo())
	if err != nil {
		slog.Error("Failed to create system tray", "error", err)
		return 1
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agentErr := make(chan error, 1)
	go func() {
		// The key hook starts once the icon is visible
		<-tray.Ready()
		err := agent.Run(ctx)
		agentErr <- err
		tray.Stop()
	}()

	// The tray owns the main thread until it quits
	tray.Run()
	agent.Quit()

	code := 0
	select {
	case err := <-agentErr:
		if err != nil {
			slog.Error("Agent error", "error", err)
			code = 1
		}
	case <-time.After(shutdownTimeout + exitGrace):
		slog.Warn("Agent did not stop in time")
	}

	time.Sleep(exitGrace)
	slog.Info("RawPaste stopped")
	return code
}

// setupLogging installs the default slog logger. Debug mode logs every key
// event and is meant for troubleshooting only.
func setupLogging(cfg config.LoggingConfig) (io.Closer, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var out io.WriteCloser = nopCloser{os.Stdout}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
