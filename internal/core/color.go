package core

import "strconv"

// Color is the color of a screen cell. The zero value is the terminal
// default; any other value holds an ANSI 256-color code plus one.
type Color uint16

// ColorDefault leaves the terminal color unchanged.
const ColorDefault Color = 0

// Colors used by the editor chrome.
var (
	ColorGray      = ANSI(240)
	ColorDim       = ANSI(238)
	ColorCursor    = ANSI(57)
	ColorHighlight = ANSI(229)
	ColorWarning   = ANSI(208)
)

// ANSI returns the Color for an ANSI 256-color code.
func ANSI(code uint8) Color {
	return Color(code) + 1
}

// ParseColor parses a decimal ANSI code such as "208".
// Anything else yields ColorDefault.
func ParseColor(s string) Color {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return ColorDefault
	}
	return ANSI(uint8(n))
}

// Code returns the ANSI code, or false for ColorDefault.
func (c Color) Code() (uint8, bool) {
	if c == ColorDefault {
		return 0, false
	}
	return uint8(c - 1), true
}
