package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyMatch3Preset adjusts every layout for a difficulty preset.
// Easy gives 50% more moves and one fewer token kind, hard cuts moves to 70%.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	for i := range cfg.Layouts {
		l := &cfg.Layouts[i]
		switch preset {
		case DifficultyEasy:
			l.StartingMoves += l.StartingMoves / 2
			kinds := l.EffectiveKinds(len(cfg.Tokens)) - 1
			if kinds < MinTokens {
				kinds = MinTokens
			}
			l.Kinds = kinds
		case DifficultyHard:
			l.StartingMoves = l.StartingMoves * 7 / 10
			if l.StartingMoves < 1 {
				l.StartingMoves = 1
			}
		}
	}
}
