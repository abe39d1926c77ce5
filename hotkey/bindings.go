package hotkey

import "fmt"

// Action is what a chord asks for
type Action int

const (
	ActionNone Action = iota
	ActionPaste
	ActionToggle
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPaste:
		return "paste"
	case ActionToggle:
		return "toggle"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Profile is the static hotkey table of one platform.
// Letters maps physical key codes to letters for when Ctrl+Shift blanks the
// character payload of a key event.
type Profile struct {
	Platform string
	Paste    string
	Toggle   string
	Quit     string
	Letters  map[uint16]rune
}

var profiles = map[string]Profile{
	// Ctrl rather than Cmd keeps the system paste shortcut free.
	"darwin": {
		Platform: "darwin",
		Paste:    "ctrl+shift+v",
		Toggle:   "ctrl+shift+b",
		Quit:     "ctrl+shift+q",
		// Carbon kVK_ANSI_* codes
		Letters: map[uint16]rune{9: 'v', 11: 'b', 12: 'q'},
	},
	// Windows already owns Ctrl+Shift+V in many applications.
	"windows": {
		Platform: "windows",
		Paste:    "ctrl+shift+b",
		Toggle:   "ctrl+shift+h",
		Quit:     "ctrl+shift+q",
		// Virtual key codes match ASCII uppercase
		Letters: letterRange(0x41),
	},
	"linux": {
		Platform: "linux",
		Paste:    "ctrl+shift+v",
		Toggle:   "ctrl+shift+b",
		Quit:     "ctrl+shift+q",
		// X11 keysyms, upper and lower case
		Letters: merge(letterRange(0x41), letterRange(0x61)),
	},
}

func letterRange(base uint16) map[uint16]rune {
	m := make(map[uint16]rune, 26)
	for i := uint16(0); i < 26; i++ {
		m[base+i] = rune('a' + i)
	}
	return m
}

func merge(maps ...map[uint16]rune) map[uint16]rune {
	out := make(map[uint16]rune)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// ProfileFor returns the table for goos. Unknown platforms get the linux
// letters without a physical code table.
func ProfileFor(goos string) Profile {
	if p, ok := profiles[goos]; ok {
		return p
	}
	p := profiles["linux"]
	p.Platform = goos
	p.Letters = nil
	return p
}

// Bindings is a validated, immutable Profile
type Bindings struct {
	platform string
	chords   map[Action]Chord
	actions  map[rune]Action
	letters  map[uint16]rune
}

// NewBindings parses and validates a profile. Every action must be
// Ctrl+Shift plus a distinct letter.
func NewBindings(p Profile) (*Bindings, error) {
	b := &Bindings{
		platform: p.Platform,
		chords:   make(map[Action]Chord, 3),
		actions:  make(map[rune]Action, 3),
		letters:  p.Letters,
	}

	for _, entry := range []struct {
		action Action
		combo  string
	}{
		{ActionPaste, p.Paste},
		{ActionToggle, p.Toggle},
		{ActionQuit, p.Quit},
	} {
		chord, err := ParseChord(entry.combo)
		if err != nil {
			return nil, fmt.Errorf("%s hotkey: %w", entry.action, err)
		}
		if !chord.Ctrl || !chord.Shift || chord.Alt || chord.Win {
			return nil, fmt.Errorf("%s hotkey %q must be Ctrl+Shift plus a letter", entry.action, entry.combo)
		}
		letter, ok := chord.Letter()
		if !ok {
			return nil, fmt.Errorf("%s hotkey %q must end in a single letter", entry.action, entry.combo)
		}
		if other, dup := b.actions[letter]; dup {
			return nil, fmt.Errorf("%s and %s hotkeys share the letter %q", other, entry.action, letter)
		}

		b.chords[entry.action] = chord
		b.actions[letter] = entry.action
	}

	return b, nil
}

// Platform returns the profile's platform identifier
func (b *Bindings) Platform() string {
	return b.platform
}

// Chord returns the chord bound to action
func (b *Bindings) Chord(a Action) Chord {
	return b.chords[a]
}

// Action returns the action bound to letter
func (b *Bindings) Action(letter rune) Action {
	return b.actions[letter]
}

// Letter resolves a physical key code
func (b *Bindings) Letter(raw uint16) (rune, bool) {
	r, ok := b.letters[raw]
	return r, ok
}
