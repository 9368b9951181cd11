package core

// Color is the foreground color of a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the runner.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorPink
	ColorGold
	ColorGray
	ColorDim
)
