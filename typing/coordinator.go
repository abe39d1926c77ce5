// Package typing turns clipboard text into synthetic keystrokes.
//
// A Coordinator owns the session state (enabled, typing, cancellation) and
// runs at most one typing loop at a time. Callers trigger it from a key
// observer or a tray menu; it never blocks them.
package typing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Key is a special key with a dedicated keystroke
type Key int

const (
	KeyEnter Key = iota + 1
	KeyTab
)

func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// Clipboard reads the current clipboard text
type Clipboard interface {
	Get() (string, error)
}

// Injector synthesizes keystrokes. Errors are per keystroke and non-fatal.
type Injector interface {
	PressRelease(k Key) error
	TypeRune(r rune) error
}

// Transform rewrites clipboard text before it is typed
type Transform func(ctx context.Context, text string) (string, error)

// Options tunes the typing cadence
type Options struct {
	KeyDelay    time.Duration
	SettleDelay time.Duration
	Transform   Transform
}

// DefaultOptions returns a 20ms key delay and a 300ms settle delay
func DefaultOptions() Options {
	return Options{
		KeyDelay:    20 * time.Millisecond,
		SettleDelay: 300 * time.Millisecond,
	}
}

// State is an immutable snapshot for rendering
type State struct {
	Enabled bool
	Typing  bool
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Coordinator serializes clipboard typing and supports cooperative cancellation
type Coordinator struct {
	clipboard Clipboard
	injector  Injector
	opts      Options

	enabled         atomic.Bool
	typing          atomic.Bool
	active          atomic.Bool
	cancelRequested atomic.Bool
	closed          atomic.Bool

	mu       sync.Mutex
	current  *task
	changes  chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

// NewCoordinator creates an enabled, idle coordinator
func NewCoordinator(clipboard Clipboard, injector Injector, opts Options) *Coordinator {
	c := &Coordinator{
		clipboard: clipboard,
		injector:  injector,
		opts:      opts,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	c.enabled.Store(true)
	return c
}

// RequestPaste starts typing the clipboard in the background.
// It is a no-op returning false while disabled, shut down, or while a
// previous loop has not exited yet.
func (c *Coordinator) RequestPaste() bool {
	if c.closed.Load() || !c.enabled.Load() {
		return false
	}
	if !c.active.CompareAndSwap(false, true) {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		cancel()
		c.active.Store(false)
		return false
	}
	c.cancelRequested.Store(false)
	c.current = t
	c.mu.Unlock()

	go c.run(ctx, t)
	return true
}

// RequestCancel asks the running loop to stop at its next checkpoint
func (c *Coordinator) RequestCancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelRequested.Store(true)
	if c.current != nil {
		c.current.cancel()
	}
}

// ToggleEnabled flips the enabled flag, or stops typing if a loop is running.
//
// When typing, the visible flag is cleared immediately even though the loop
// may still be finishing its current keystroke. Renderers see "idle" a moment
// early; a new paste is still refused until the loop has really exited.
func (c *Coordinator) ToggleEnabled() {
	if c.typing.Load() {
		c.RequestCancel()
		c.typing.Store(false)
		slog.Info("Typing stopped")
		c.notify()
		return
	}

	for {
		old := c.enabled.Load()
		if c.enabled.CompareAndSwap(old, !old) {
			slog.Info("Typing toggled", "enabled", !old)
			break
		}
	}
	c.notify()
}

// Snapshot returns the current state without blocking
func (c *Coordinator) Snapshot() State {
	return State{
		Enabled: c.enabled.Load(),
		Typing:  c.typing.Load(),
	}
}

// Changes delivers a coalesced signal whenever the state may have changed
func (c *Coordinator) Changes() <-chan struct{} {
	return c.changes
}

// Done is closed once Shutdown has been called
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Shutdown cancels typing, refuses new pastes and waits for the running loop
// until ctx expires
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.closed.Store(true)
	c.RequestCancel()
	c.doneOnce.Do(func() { close(c.done) })

	c.mu.Lock()
	t := c.current
	c.mu.Unlock()

	if t == nil {
		return nil
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("typing loop did not stop: %w", ctx.Err())
	}
}

func (c *Coordinator) run(ctx context.Context, t *task) {
	defer func() {
		c.typing.Store(false)

		c.mu.Lock()
		if c.current == t {
			c.current = nil
		}
		c.mu.Unlock()

		t.cancel()
		c.active.Store(false)
		close(t.done)
		c.notify()
	}()

	text, err := c.clipboard.Get()
	if err != nil {
		slog.Debug("Clipboard unavailable", "error", err)
		return
	}

	if c.opts.Transform != nil && text != "" {
		text, err = c.opts.Transform(ctx, text)
		if err != nil {
			slog.Warn("Failed to prepare clipboard text", "error", err)
			return
		}
	}

	if text == "" {
		slog.Debug("Clipboard empty, nothing to type")
		return
	}
	if c.cancelled(ctx) || !c.enabled.Load() {
		return
	}

	c.typing.Store(true)
	c.notify()

	start := time.Now()
	if !c.sleep(ctx, c.opts.SettleDelay) {
		slog.Info("Typing cancelled before start")
		return
	}

	emitted, failed := 0, 0
	for _, r := range text {
		if c.cancelled(ctx) {
			break
		}

		if err := c.emit(r); err != nil {
			failed++
			slog.Debug("Keystroke failed", "error", err)
		} else {
			emitted++
		}

		if !c.sleep(ctx, c.opts.KeyDelay) {
			break
		}
	}

	slog.Info("Typing finished",
		"emitted", emitted,
		"failed", failed,
		"cancelled", c.cancelRequested.Load(),
		"duration", time.Since(start).Round(time.Millisecond))
}

func (c *Coordinator) emit(r rune) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("injector panic: %v", p)
		}
	}()

	switch r {
	case '\n':
		return c.injector.PressRelease(KeyEnter)
	case '\t':
		return c.injector.PressRelease(KeyTab)
	default:
		return c.injector.TypeRune(r)
	}
}

func (c *Coordinator) cancelled(ctx context.Context) bool {
	return c.cancelRequested.Load() || ctx.Err() != nil
}

// sleep waits d and reports whether typing should continue
func (c *Coordinator) sleep(ctx context.Context, d time.Duration) bool {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	return !c.cancelled(ctx)
}

func (c *Coordinator) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
