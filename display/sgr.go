package display

import "strconv"

// Attr is a Select Graphic Rendition code as understood by ANSI terminals.
type Attr uint8

const (
	Reset     Attr = 0
	Bold      Attr = 1
	Italic    Attr = 3
	Underline Attr = 4
	Strike    Attr = 9
)

// Foreground colors.
const (
	BlackFG Attr = iota + 30
	RedFG
	GreenFG
	YellowFG
	BlueFG
	MagentaFG
	CyanFG
	WhiteFG
)

// Background colors.
const (
	BlackBG Attr = iota + 40
	RedBG
	GreenBG
	YellowBG
	BlueBG
	MagentaBG
	CyanBG
	WhiteBG
)

// Bright foreground colors.
const (
	BrightBlackFG Attr = iota + 90
	BrightRedFG
	BrightGreenFG
	BrightYellowFG
	BrightBlueFG
	BrightMagentaFG
	BrightCyanFG
	BrightWhiteFG
)

// Bright background colors.
const (
	BrightBlackBG Attr = iota + 100
	BrightRedBG
	BrightGreenBG
	BrightYellowBG
	BrightBlueBG
	BrightMagentaBG
	BrightCyanBG
	BrightWhiteBG
)

// String returns the decimal SGR parameter.
func (a Attr) String() string {
	return strconv.Itoa(int(a))
}

// IsForeground reports whether a selects a foreground color.
func (a Attr) IsForeground() bool {
	return (a >= BlackFG && a <= WhiteFG) || (a >= BrightBlackFG && a <= BrightWhiteFG)
}

// IsBackground reports whether a selects a background color.
func (a Attr) IsBackground() bool {
	return (a >= BlackBG && a <= WhiteBG) || (a >= BrightBlackBG && a <= BrightWhiteBG)
}

// PaletteIndex returns the 16-color palette slot of a color attribute, or -1
// for non-color attributes.
func (a Attr) PaletteIndex() int {
	switch {
	case a >= BlackFG && a <= WhiteFG:
		return int(a - BlackFG)
	case a >= BlackBG && a <= WhiteBG:
		return int(a - BlackBG)
	case a >= BrightBlackFG && a <= BrightWhiteFG:
		return int(a-BrightBlackFG) + 8
	case a >= BrightBlackBG && a <= BrightWhiteBG:
		return int(a-BrightBlackBG) + 8
	}
	return -1
}
