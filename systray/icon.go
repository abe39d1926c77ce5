package systray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"markestedt/rawpaste/typing"
)

// Status is the rendered state of the tray icon
type Status int

const (
	StatusActive Status = iota
	StatusPaused
	StatusTyping
)

// StatusOf maps a coordinator snapshot to a tray status
func StatusOf(s typing.State) Status {
	switch {
	case s.Typing:
		return StatusTyping
	case s.Enabled:
		return StatusActive
	default:
		return StatusPaused
	}
}

var statusColors = map[Status]color.RGBA{
	StatusTyping: {R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}, // amber
	StatusActive: {R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}, // green
	StatusPaused: {R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}, // grey
}

const (
	iconSize   = 64
	iconMargin = 2
	iconRadius = 12
	iconLabel  = "CP"
)

// renderIcon draws a rounded square in fill with the label centered in white
func renderIcon(fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	lo, hi := iconMargin, iconSize-iconMargin
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			if insideRounded(x, y, lo, hi, iconRadius) {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	// basicfont is 7x13; draw small and scale up 2x
	face := basicfont.Face7x13
	label := image.NewRGBA(image.Rect(0, 0, iconSize/2, iconSize/4))
	d := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	width := d.MeasureString(iconLabel).Ceil()
	d.Dot = fixed.P((label.Bounds().Dx()-width)/2, face.Ascent+(label.Bounds().Dy()-face.Height)/2)
	d.DrawString(iconLabel)

	dst := image.Rect(0, iconSize/4, iconSize, iconSize*3/4)
	draw.NearestNeighbor.Scale(img, dst, label, label.Bounds(), draw.Over, nil)

	return img
}

// insideRounded reports whether pixel (x, y) lies in the rounded square
// spanning [lo, hi) on both axes
func insideRounded(x, y, lo, hi, r int) bool {
	cx, cy := x, y
	switch {
	case x < lo+r:
		cx = lo + r
	case x >= hi-r:
		cx = hi - r - 1
	}
	switch {
	case y < lo+r:
		cy = lo + r
	case y >= hi-r:
		cy = hi - r - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// encodeIcon returns PNG bytes, or an ICO container around them when ico is
// set (the Windows tray only accepts .ico data)
func encodeIcon(img image.Image, ico bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	if !ico {
		return buf.Bytes(), nil
	}
	return wrapICO(buf.Bytes(), img.Bounds().Dx(), img.Bounds().Dy()), nil
}

// wrapICO embeds one PNG image in an ICO file (supported since Vista)
func wrapICO(pngData []byte, width, height int) []byte {
	const headerSize, entrySize = 6, 16

	out := make([]byte, headerSize+entrySize, headerSize+entrySize+len(pngData))
	binary.LittleEndian.PutUint16(out[2:], 1) // type: icon
	binary.LittleEndian.PutUint16(out[4:], 1) // image count

	entry := out[headerSize:]
	entry[0] = byte(width % 256) // 0 means 256
	entry[1] = byte(height % 256)
	binary.LittleEndian.PutUint16(entry[4:], 1)  // color planes
	binary.LittleEndian.PutUint16(entry[6:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(entry[8:], uint32(len(pngData)))
	binary.LittleEndian.PutUint32(entry[12:], headerSize+entrySize)

	return append(out, pngData...)
}

// renderIcons pre-renders one icon per status
func renderIcons(ico bool) (map[Status][]byte, error) {
	icons := make(map[Status][]byte, len(statusColors))
	for status, fill := range statusColors {
		data, err := encodeIcon(renderIcon(fill), ico)
		if err != nil {
			return nil, err
		}
		icons[status] = data
	}
	return icons, nil
}
