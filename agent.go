package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"markestedt/rawpaste/config"
	"markestedt/rawpaste/hotkey"
	"markestedt/rawpaste/platform"
	"markestedt/rawpaste/postprocess"
	"markestedt/rawpaste/systray"
	"markestedt/rawpaste/typing"
)

const shutdownTimeout = time.Second

// Agent coordinates hotkey detection and clipboard typing
type Agent struct {
	cfg         *config.Config
	bindings    *hotkey.Bindings
	listener    platform.KeyListener
	coordinator *typing.Coordinator
	interpreter *hotkey.Interpreter

	quit     chan struct{}
	quitOnce sync.Once
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	bindings, err := hotkey.NewBindings(hotkey.ProfileFor(runtime.GOOS))
	if err != nil {
		return nil, fmt.Errorf("invalid hotkey table: %w", err)
	}

	pipeline := newPipeline(cfg.Typing)

	opts := typing.Options{
		KeyDelay:    cfg.Typing.KeyDelay(),
		SettleDelay: cfg.Typing.SettleDelay(),
	}
	if pipeline.Len() > 0 {
		opts.Transform = pipeline.Process
	}

	a := &Agent{
		cfg:         cfg,
		bindings:    bindings,
		listener:    platform.NewKeyListener(),
		coordinator: typing.NewCoordinator(platform.NewClipboard(), platform.NewInjector(), opts),
		quit:        make(chan struct{}),
	}
	a.interpreter = hotkey.NewInterpreter(bindings, a)

	return a, nil
}

func newPipeline(cfg config.TypingConfig) *postprocess.Pipeline {
	p := postprocess.NewPipeline()
	if cfg.NormalizeLineEndings {
		p.AddProcessor(postprocess.NormalizeLineEndings)
	}
	if cfg.StripControl {
		p.AddProcessor(postprocess.StripControl)
	}
	if cfg.TrimTrailingNewline {
		p.AddProcessor(postprocess.TrimTrailingNewline)
	}
	return p
}

// Run starts the agent's main event loop. It returns when ctx is done or a
// quit was requested.
func (a *Agent) Run(ctx context.Context) error {
	events, err := a.listener.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start key listener: %w", err)
	}
	defer a.shutdown()

	slog.Info("RawPaste started",
		"platform", a.bindings.Platform(),
		"paste", a.bindings.Chord(hotkey.ActionPaste).String(),
		"toggle", a.bindings.Chord(hotkey.ActionToggle).String(),
		"quit", a.bindings.Chord(hotkey.ActionQuit).String(),
		"key_delay", a.cfg.Typing.KeyDelay())

	// Main event loop
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-a.quit:
			return nil

		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("key listener stopped unexpectedly")
			}
			a.interpreter.Handle(ev)
		}
	}
}

func (a *Agent) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.coordinator.Shutdown(ctx); err != nil {
		slog.Warn("Typing did not stop in time", "error", err)
	}
	a.listener.Stop()
}

// Coordinator exposes the typing state for the tray
func (a *Agent) Coordinator() *typing.Coordinator {
	return a.coordinator
}

// MenuInfo describes the agent's hotkeys for the tray menu
func (a *Agent) MenuInfo() systray.MenuInfo {
	return systray.MenuInfo{
		Title:      "RawPaste",
		PasteChord: a.bindings.Chord(hotkey.ActionPaste).String(),
		KeyDelay:   a.cfg.Typing.KeyDelay(),
	}
}

// RequestPaste implements hotkey.Actions
func (a *Agent) RequestPaste() {
	if !a.coordinator.RequestPaste() {
		slog.Debug("Paste ignored", "state", a.coordinator.Snapshot())
	}
}

// RequestCancel implements hotkey.Actions
func (a *Agent) RequestCancel() {
	a.coordinator.RequestCancel()
}

// ToggleEnabled implements hotkey.Actions and systray.MenuActions
func (a *Agent) ToggleEnabled() {
	a.coordinator.ToggleEnabled()
}

// Typing implements hotkey.Actions
func (a *Agent) Typing() bool {
	return a.coordinator.Snapshot().Typing
}

// Quit implements hotkey.Actions and systray.MenuActions
func (a *Agent) Quit() {
	a.quitOnce.Do(func() {
		slog.Info("Quit requested")
		a.coordinator.RequestCancel()
		close(a.quit)
	})
}
