package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration used when the
// embedded YAML cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Tokens: []TokenConfig{
			{Name: "ruby", Glyph: "●", Color: "bright_red"},
			{Name: "emerald", Glyph: "◆", Color: "bright_green"},
			{Name: "sapphire", Glyph: "■", Color: "bright_blue"},
			{Name: "topaz", Glyph: "▲", Color: "bright_yellow"},
			{Name: "amethyst", Glyph: "★", Color: "bright_magenta"},
			{Name: "pearl", Glyph: "♥", Color: "bright_cyan"},
		},
		Layouts: []LayoutConfig{
			{
				ID:            "match3",
				Name:          "Classic",
				Columns:       8,
				Rows:          8,
				StartingMoves: 20,
			},
		},
	}
}
