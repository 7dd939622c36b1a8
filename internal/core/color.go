package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the board renderer. Ranks cycle through the tile colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// TileColors is the rank -> color ramp used for tiles.
var TileColors = []Color{
	ColorWhite,
	ColorBrightWhite,
	ColorYellow,
	ColorOrange,
	ColorBrightRed,
	ColorRed,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorBrightCyan,
	ColorCyan,
	ColorBrightBlue,
	ColorBlue,
	ColorBrightMagenta,
	ColorMagenta,
}

// TileColor returns the color for a tile rank.
func TileColor(rank int) Color {
	if rank < 0 {
		return ColorDefault
	}
	return TileColors[rank%len(TileColors)]
}
