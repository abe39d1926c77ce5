package systray

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/rawpaste/typing"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		state  typing.State
		status Status
		text   string
		toggle string
	}{
		{typing.State{Enabled: true}, StatusActive, "Status: Active", "Pause"},
		{typing.State{Enabled: false}, StatusPaused, "Status: Paused", "Resume"},
		{typing.State{Enabled: true, Typing: true}, StatusTyping, "Status: Typing...", "Stop Typing"},
		{typing.State{Enabled: false, Typing: true}, StatusTyping, "Status: Typing...", "Stop Typing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusOf(tt.state))
		assert.Equal(t, tt.text, StatusText(tt.state))
		assert.Equal(t, tt.toggle, ToggleText(tt.state))
	}
}

func TestSpeedText(t *testing.T) {
	assert.Equal(t, "Speed: 0.02s/char", SpeedText(20*time.Millisecond))
	assert.Equal(t, "Speed: 0.5s/char", SpeedText(500*time.Millisecond))
}

func TestRenderIcon(t *testing.T) {
	fill := statusColors[StatusActive]
	img := renderIcon(fill)

	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0), "margin is transparent")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(iconMargin, iconMargin), "corner is rounded off")
	assert.Equal(t, fill, img.RGBAAt(6, iconSize/2))
	assert.Equal(t, fill, img.RGBAAt(iconSize/2, 6))

	white := 0
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
				white++
			}
		}
	}
	assert.Greater(t, white, 20, "label glyphs are drawn")
}

func TestRenderIconsPNG(t *testing.T) {
	icons, err := renderIcons(false)
	require.NoError(t, err)
	require.Len(t, icons, 3)

	for status, data := range icons {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		r, g, b, a := img.At(6, iconSize/2).RGBA()
		want := statusColors[status]
		assert.Equal(t, []uint32{uint32(want.R), uint32(want.G), uint32(want.B), 0xFF},
			[]uint32{r >> 8, g >> 8, b >> 8, a >> 8})
	}
}

func TestRenderIconsICO(t *testing.T) {
	icons, err := renderIcons(true)
	require.NoError(t, err)

	data := icons[StatusTyping]
	require.Greater(t, len(data), 22)
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[0:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, byte(iconSize), data[6])
	assert.Equal(t, uint32(len(data)-22), binary.LittleEndian.Uint32(data[14:]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(data[18:]))

	_, err = png.Decode(bytes.NewReader(data[22:]))
	assert.NoError(t, err)
}
