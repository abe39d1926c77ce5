package hotkey

import (
	"log/slog"
	"unicode"
)

// Portable virtual key codes as reported by the key observer (libuiohook VC_*)
const (
	CodeEscape uint16 = 0x0001
	CodeCtrlL  uint16 = 0x001D
	CodeCtrlR  uint16 = 0x0E1D
	CodeShiftL uint16 = 0x002A
	CodeShiftR uint16 = 0x0036
)

// CharUndefined marks a key event without a character payload
const CharUndefined rune = 0xFFFF

// maxHeld bounds the held set in case key releases are lost
const maxHeld = 32

// KeyEvent is a raw key press or release
type KeyEvent struct {
	Down bool
	Code uint16 // portable virtual code
	Raw  uint16 // platform physical code
	Char rune
}

// Actions receives the interpreted hotkeys
type Actions interface {
	RequestPaste()
	RequestCancel()
	ToggleEnabled()
	Quit()
	Typing() bool
}

// Interpreter turns raw key events into actions.
// Handle must be called from a single goroutine.
type Interpreter struct {
	bindings *Bindings
	actions  Actions
	held     map[uint16]struct{}
}

// NewInterpreter creates an interpreter with nothing held
func NewInterpreter(bindings *Bindings, actions Actions) *Interpreter {
	return &Interpreter{
		bindings: bindings,
		actions:  actions,
		held:     make(map[uint16]struct{}),
	}
}

// Handle processes one key event. It never panics.
func (in *Interpreter) Handle(ev KeyEvent) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Hotkey handler panicked", "panic", p)
		}
	}()

	if !ev.Down {
		delete(in.held, ev.Code)
		return
	}

	_, repeat := in.held[ev.Code]
	if !repeat && len(in.held) >= maxHeld {
		slog.Warn("Too many keys held, resetting", "count", len(in.held))
		clear(in.held)
	}
	in.held[ev.Code] = struct{}{}

	slog.Debug("Key pressed", "code", ev.Code, "raw", ev.Raw, "char", ev.Char, "repeat", repeat)

	if ev.Code == CodeEscape {
		if in.actions.Typing() {
			slog.Info("Hotkey triggered", "action", "cancel")
			in.actions.RequestCancel()
		}
		return
	}

	// Auto-repeat of a held chord fires once
	if repeat || !in.chordHeld() {
		return
	}

	letter, ok := in.resolve(ev)
	slog.Debug("Ctrl+Shift detected", "letter", string(letter), "resolved", ok)
	if !ok {
		return
	}

	action := in.bindings.Action(letter)
	if action == ActionNone {
		return
	}

	slog.Info("Hotkey triggered", "action", action.String())
	switch action {
	case ActionPaste:
		in.actions.RequestPaste()
	case ActionToggle:
		in.actions.ToggleEnabled()
	case ActionQuit:
		in.actions.Quit()
	}
}

// Held reports the number of keys currently down
func (in *Interpreter) Held() int {
	return len(in.held)
}

func (in *Interpreter) chordHeld() bool {
	return in.isHeld(CodeCtrlL, CodeCtrlR) && in.isHeld(CodeShiftL, CodeShiftR)
}

func (in *Interpreter) isHeld(codes ...uint16) bool {
	for _, c := range codes {
		if _, ok := in.held[c]; ok {
			return true
		}
	}
	return false
}

// resolve prefers the character payload and falls back to the physical
// code, since Ctrl+Shift often blanks or rewrites the character.
func (in *Interpreter) resolve(ev KeyEvent) (rune, bool) {
	if ev.Char != CharUndefined && unicode.IsLetter(ev.Char) {
		return unicode.ToLower(ev.Char), true
	}
	return in.bindings.Letter(ev.Raw)
}
