package core

import "strings"

// Color is a foreground color for a screen cell.
// Values map onto the ANSI 16-color palette plus a couple of 256-color extras.
type Color uint8

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

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor looks up a color by its config name (e.g. "bright_red").
// Matching is case-insensitive; "-" and " " are treated as "_".
func ParseColor(name string) (Color, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	c, ok := colorNames[key]
	return c, ok
}
