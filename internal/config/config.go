// Package config provides YAML-based configuration for match-3 layouts,
// token sets and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Match3Config contains the token set and every playable layout.
type Match3Config struct {
	Tokens  []TokenConfig  `yaml:"tokens"`
	Layouts []LayoutConfig `yaml:"layouts"`
}

// TokenConfig describes how one token kind is drawn.
// Token kinds are numbered by their position in the list, starting at 1.
type TokenConfig struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"` // Single rune
	Color string `yaml:"color"` // core.ParseColor name
}

// LayoutConfig describes one board shape.
type LayoutConfig struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Columns       int          `yaml:"columns"`
	Rows          int          `yaml:"rows"`
	StartingMoves int          `yaml:"starting_moves"`
	Kinds         int          `yaml:"kinds"`    // Token kinds drawn from; 0 = all configured tokens
	Disabled      []CellConfig `yaml:"disabled"` // Holes, row 0 at the bottom
	Mask          []string     `yaml:"mask"`     // Optional picture, top row first, '#' = hole
}

// CellConfig is a grid coordinate in config files.
type CellConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// MinTokens is the smallest token set that can still produce a playable board.
const MinTokens = 3

// ErrUnknownLayout is returned by Layout for IDs that are not configured.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout returns the layout with the given ID.
func (c Match3Config) Layout(id string) (LayoutConfig, error) {
	for _, l := range c.Layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return LayoutConfig{}, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
}

// Validate checks the whole config and returns every problem found, joined.
func (c Match3Config) Validate() error {
	var errs []error

	if len(c.Tokens) < MinTokens {
		errs = append(errs, fmt.Errorf("need at least %d tokens, got %d", MinTokens, len(c.Tokens)))
	}
	for i, t := range c.Tokens {
		if utf8.RuneCountInString(t.Glyph) != 1 {
			errs = append(errs, fmt.Errorf("token %d (%s): glyph %q must be a single character", i+1, t.Name, t.Glyph))
		}
	}

	if len(c.Layouts) == 0 {
		errs = append(errs, errors.New("no layouts configured"))
	}
	seen := make(map[string]bool, len(c.Layouts))
	for _, l := range c.Layouts {
		if l.ID == "" {
			errs = append(errs, errors.New("layout with empty id"))
		} else if seen[l.ID] {
			errs = append(errs, fmt.Errorf("duplicate layout id %q", l.ID))
		}
		seen[l.ID] = true

		if err := l.validate(len(c.Tokens)); err != nil {
			errs = append(errs, fmt.Errorf("layout %q: %w", l.ID, err))
		}
	}

	return errors.Join(errs...)
}

func (l LayoutConfig) validate(tokenCount int) error {
	cols, rows := l.Size()
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", cols, rows)
	}
	if len(l.Mask) > 0 {
		if l.Rows != 0 && l.Rows != len(l.Mask) {
			return fmt.Errorf("mask has %d rows, layout says %d", len(l.Mask), l.Rows)
		}
		for i, line := range l.Mask {
			if n := utf8.RuneCountInString(line); n != cols {
				return fmt.Errorf("mask row %d has width %d, want %d", i, n, cols)
			}
		}
	}
	if l.StartingMoves < 1 {
		return fmt.Errorf("starting_moves must be at least 1, got %d", l.StartingMoves)
	}
	if l.Kinds != 0 && (l.Kinds < MinTokens || l.Kinds > tokenCount) {
		return fmt.Errorf("kinds must be between %d and %d, got %d", MinTokens, tokenCount, l.Kinds)
	}
	for _, d := range l.Disabled {
		if d.X < 0 || d.X >= cols || d.Y < 0 || d.Y >= rows {
			return fmt.Errorf("disabled cell (%d,%d) outside %dx%d board", d.X, d.Y, cols, rows)
		}
	}
	if len(l.Holes()) >= cols*rows {
		return errors.New("every cell is disabled")
	}
	return nil
}

// Size returns the board dimensions, taking them from the mask when the
// explicit columns/rows are unset.
func (l LayoutConfig) Size() (columns, rows int) {
	columns, rows = l.Columns, l.Rows
	if len(l.Mask) > 0 {
		if rows == 0 {
			rows = len(l.Mask)
		}
		if columns == 0 {
			columns = utf8.RuneCountInString(l.Mask[0])
		}
	}
	return columns, rows
}

// Holes returns the disabled cells from both the explicit list and the
// mask, without duplicates.
func (l LayoutConfig) Holes() []CellConfig {
	_, rows := l.Size()
	seen := make(map[CellConfig]bool)
	var out []CellConfig

	add := func(c CellConfig) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	for _, d := range l.Disabled {
		add(d)
	}
	for i, line := range l.Mask {
		x := 0
		for _, r := range line {
			if r == '#' {
				add(CellConfig{X: x, Y: rows - 1 - i})
			}
			x++
		}
	}
	return out
}

// EffectiveKinds returns how many token kinds the layout draws from.
func (l LayoutConfig) EffectiveKinds(tokenCount int) int {
	if l.Kinds <= 0 || l.Kinds > tokenCount {
		return tokenCount
	}
	return l.Kinds
}
