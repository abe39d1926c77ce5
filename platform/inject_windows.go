//go:build windows

package platform

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"markestedt/rawpaste/typing"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard    = 1
	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
	mapvkVkToVsc     = 0
	vkTab            = 0x09
	vkReturn         = 0x0D
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// WindowsInjector types through SendInput
type WindowsInjector struct{}

// NewInjector creates a new Windows injector
func NewInjector() Injector {
	return &WindowsInjector{}
}

// PressRelease taps Enter or Tab by virtual key with its scan code, which
// elevated and remote-desktop windows accept more reliably
func (p *WindowsInjector) PressRelease(k typing.Key) error {
	var vk uint16
	switch k {
	case typing.KeyEnter:
		vk = vkReturn
	case typing.KeyTab:
		vk = vkTab
	default:
		return fmt.Errorf("unsupported key: %s", k)
	}

	scan, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)

	return send([]input{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, wScan: uint16(scan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, wScan: uint16(scan), dwFlags: keyeventfKeyup}},
	})
}

// TypeRune sends the character as UTF-16 units, independent of keyboard layout
func (p *WindowsInjector) TypeRune(r rune) error {
	units := utf16.Encode([]rune{r})

	inputs := make([]input, 0, len(units)*2)
	for _, u := range units {
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode},
		})
	}
	for _, u := range units {
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyup},
		})
	}

	return send(inputs)
}

func send(inputs []input) error {
	// Send all inputs at once for better atomicity
	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)

	if int(ret) != len(inputs) {
		return fmt.Errorf("SendInput sent %d of %d events: %w", ret, len(inputs), err)
	}
	return nil
}
