package platform

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"

	"markestedt/rawpaste/hotkey"
)

// ErrListening is returned when Start is called twice
var ErrListening = errors.New("key listener already running")

// HookListener observes the keyboard through a global input hook
// (CGEventTap, low-level keyboard hook or XRecord, depending on the OS)
type HookListener struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewKeyListener creates a new global key listener
func NewKeyListener() KeyListener {
	return &HookListener{}
}

// Start installs the hook and forwards presses and releases until ctx is
// done or Stop is called. The returned channel is closed on exit.
func (l *HookListener) Start(ctx context.Context) (<-chan hotkey.KeyEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil, ErrListening
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.running = true
	l.stop = make(chan struct{})
	l.done = make(chan struct{})

	src := hook.Start()
	events := make(chan hotkey.KeyEvent, 64)

	go l.forward(ctx, src, events, l.stop, l.done)

	slog.Debug("Key listener started")
	return events, nil
}

// Stop removes the hook and waits for the forwarder to exit
func (l *HookListener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stop)
	done := l.done
	l.mu.Unlock()

	<-done
}

func (l *HookListener) forward(ctx context.Context, src chan hook.Event, out chan<- hotkey.KeyEvent, stop, done chan struct{}) {
	defer close(done)
	defer close(out)
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case ev, ok := <-src:
			if !ok {
				slog.Warn("Key hook closed")
				return
			}

			ke, ok := toKeyEvent(ev)
			if !ok {
				continue
			}

			select {
			case out <- ke:
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}
}

// toKeyEvent keeps physical presses (KeyHold) and releases (KeyUp).
// KeyDown carries the typed character and duplicates the press.
func toKeyEvent(ev hook.Event) (hotkey.KeyEvent, bool) {
	switch ev.Kind {
	case hook.KeyHold:
		return hotkey.KeyEvent{Down: true, Code: ev.Keycode, Raw: ev.Rawcode, Char: ev.Keychar}, true
	case hook.KeyUp:
		return hotkey.KeyEvent{Down: false, Code: ev.Keycode, Raw: ev.Rawcode, Char: ev.Keychar}, true
	default:
		return hotkey.KeyEvent{}, false
	}
}
