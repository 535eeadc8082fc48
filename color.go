package curveview

import (
	"fmt"
	"image/color"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to a straight-alpha color.NRGBA.
func (c RGBA) Color() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Float32 packs the color as the vec4<f32> consumed by the curve shader's
// colorMode uniform.
func (c RGBA) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "RRGGBBAA", with an optional leading '#'.
// Unrecognized input yields opaque black.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex is like Hex but returns ErrInvalidHex for malformed input.
func ParseHex(hex string) (RGBA, error) {
	s := strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(s) {
	case 3:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) &&
			parseHex(s[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black   = RGB(0, 0, 0)
	White   = RGB(1, 1, 1)
	Red     = RGB(1, 0, 0)
	Green   = RGB(0, 1, 0)
	Blue    = RGB(0, 0, 1)
	Yellow  = RGB(1, 1, 0)
	Cyan    = RGB(0, 1, 1)
	Magenta = RGB(1, 0, 1)
)

// ColorIndex selects a curve color from the fixed palette.
type ColorIndex int

// Palette entries, in the order curves are assigned them.
const (
	ColorRed ColorIndex = iota
	ColorGreen
	ColorBlue
	ColorMagenta
	ColorYellow
	ColorCyan

	// PaletteSize is the number of palette entries.
	PaletteSize = int(ColorCyan) + 1
)

var palette = [PaletteSize]RGBA{
	ColorRed:     Red,
	ColorGreen:   Green,
	ColorBlue:    Blue,
	ColorMagenta: Magenta,
	ColorYellow:  Yellow,
	ColorCyan:    Cyan,
}

var colorNames = [PaletteSize]string{
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorYellow:  "yellow",
	ColorCyan:    "cyan",
}

// Valid reports whether c names a palette entry.
func (c ColorIndex) Valid() bool {
	return c >= 0 && int(c) < PaletteSize
}

// RGBA returns the palette color for c, or ErrInvalidColor if c is out of range.
func (c ColorIndex) RGBA() (RGBA, error) {
	if !c.Valid() {
		return RGBA{}, fmt.Errorf("%w: %d", ErrInvalidColor, int(c))
	}
	return palette[c], nil
}

func (c ColorIndex) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ColorIndex(%d)", int(c))
	}
	return colorNames[c]
}

// CycleColor maps a running curve counter onto the palette, wrapping around
// once every entry has been used. Negative counters wrap as well.
func CycleColor(i int) ColorIndex {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return ColorIndex(i)
}
