package systray

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/getlantern/systray"

	"markestedt/rawpaste/typing"
)

// StateSource is the read side of the typing coordinator
type StateSource interface {
	Snapshot() typing.State
	Changes() <-chan struct{}
	Done() <-chan struct{}
}

// MenuActions are the commands the menu can issue
type MenuActions interface {
	ToggleEnabled()
	Quit()
}

// MenuInfo holds the static menu text
type MenuInfo struct {
	Title      string
	PasteChord string
	KeyDelay   time.Duration
}

// SystrayManager manages the system tray icon and menu
type SystrayManager struct {
	state   StateSource
	actions MenuActions
	info    MenuInfo
	icons   map[Status][]byte
	ready   chan struct{}
}

type menu struct {
	status *systray.MenuItem
	toggle *systray.MenuItem
	quit   *systray.MenuItem
}

// NewSystrayManager creates a new systray manager with pre-rendered icons
func NewSystrayManager(state StateSource, actions MenuActions, info MenuInfo) (*SystrayManager, error) {
	icons, err := renderIcons(runtime.GOOS == "windows")
	if err != nil {
		return nil, err
	}

	return &SystrayManager{
		state:   state,
		actions: actions,
		info:    info,
		icons:   icons,
		ready:   make(chan struct{}),
	}, nil
}

// Run starts the system tray (blocking call, must run on the main goroutine)
func (m *SystrayManager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Ready is closed once the icon and menu exist
func (m *SystrayManager) Ready() <-chan struct{} {
	return m.ready
}

// Stop stops the system tray
func (m *SystrayManager) Stop() {
	systray.Quit()
}

// onReady is called when the systray is ready
func (m *SystrayManager) onReady() {
	systray.SetTooltip(m.info.Title)

	title := systray.AddMenuItem(m.info.Title, "")
	title.Disable()
	systray.AddSeparator()

	mn := menu{}
	mn.status = systray.AddMenuItem("", "Current state")
	mn.status.Disable()
	speed := systray.AddMenuItem(SpeedText(m.info.KeyDelay), "Delay between keystrokes")
	speed.Disable()
	systray.AddSeparator()

	pasteHint := systray.AddMenuItem(m.info.PasteChord+"  Paste", "Type the clipboard contents")
	pasteHint.Disable()
	stopHint := systray.AddMenuItem("ESC  Stop typing", "")
	stopHint.Disable()
	systray.AddSeparator()

	mn.toggle = systray.AddMenuItem("", "Pause or resume hotkeys")
	mn.quit = systray.AddMenuItem("Quit", "Exit "+m.info.Title)

	m.render(mn)
	go m.loop(mn)
	close(m.ready)
}

// loop handles menu clicks and redraws on state changes
func (m *SystrayManager) loop(mn menu) {
	for {
		select {
		case <-mn.toggle.ClickedCh:
			m.actions.ToggleEnabled()
		case <-mn.quit.ClickedCh:
			slog.Info("User requested quit from system tray")
			m.actions.Quit()
			return
		case <-m.state.Changes():
			m.render(mn)
		case <-m.state.Done():
			return
		}
	}
}

// render pulls a fresh snapshot; it may lag the coordinator by one change
func (m *SystrayManager) render(mn menu) {
	snap := m.state.Snapshot()

	systray.SetIcon(m.icons[StatusOf(snap)])
	mn.status.SetTitle(StatusText(snap))
	mn.toggle.SetTitle(ToggleText(snap))
}

// onExit is called when the systray is exiting
func (m *SystrayManager) onExit() {
	slog.Info("System tray exited")
}

// StatusText is the status line of the menu
func StatusText(s typing.State) string {
	switch StatusOf(s) {
	case StatusTyping:
		return "Status: Typing..."
	case StatusActive:
		return "Status: Active"
	default:
		return "Status: Paused"
	}
}

// ToggleText labels the pause/resume item
func ToggleText(s typing.State) string {
	switch StatusOf(s) {
	case StatusTyping:
		return "Stop Typing"
	case StatusActive:
		return "Pause"
	default:
		return "Resume"
	}
}

// SpeedText shows the keystroke delay
func SpeedText(d time.Duration) string {
	return fmt.Sprintf("Speed: %gs/char", d.Seconds())
}
