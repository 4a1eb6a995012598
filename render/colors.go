package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	FallbackPrimary   = color.RGBA{0xF5, 0xF5, 0xF5, 0xFF}
	FallbackAlternate = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	ExampleFill       = color.RGBA{0xF2, 0xF4, 0xF7, 0xFF}

	textColor  = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	priceColor = color.RGBA{0x14, 0x14, 0x14, 0xFF}
)

// ParseHexColor parses "#RRGGBB" or "#RGB", the leading '#' is optional
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
