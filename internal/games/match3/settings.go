package match3

import (
	"sync"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// CLI-controlled settings, read on every Reset.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset = config.DifficultyNormal
	movesOverride    int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard").
func SetDifficultyPreset(preset string) error {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		return err
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
	return nil
}

// SetMovesOverride forces the starting move budget of every layout.
// Zero keeps the configured value.
func SetMovesOverride(moves int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	movesOverride = moves
}

// Configure loads the config at path, makes it the active config and
// registers any layouts it adds. An empty path uses the search path.
func Configure(path string) error {
	if path != "" {
		cfg, err := config.LoadMatch3(path)
		if err != nil {
			return err
		}
		SetConfigPath(path)
		RegisterLayouts(cfg)
		return nil
	}
	SetConfigPath("")
	return nil
}

// loadConfig returns the active config with difficulty and move overrides
// applied. Broken custom configs fall back to the built-in default.
func loadConfig() config.Match3Config {
	settingsMu.RLock()
	path, preset, moves := configPath, difficultyPreset, movesOverride
	settingsMu.RUnlock()

	cfg, err := config.LoadMatch3(path)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}

	config.ApplyMatch3Preset(&cfg, preset)
	if moves > 0 {
		for i := range cfg.Layouts {
			cfg.Layouts[i].StartingMoves = moves
		}
	}
	return cfg
}

// RegisterLayouts adds a registry entry for every layout whose ID is not
// registered yet and returns the new IDs.
func RegisterLayouts(cfg config.Match3Config) []string {
	var added []string
	for _, l := range cfg.Layouts {
		if registry.Exists(l.ID) {
			continue
		}
		layout := l
		registry.Register(layout.ID, func() registry.Game {
			return New(layout)
		})
		added = append(added, layout.ID)
	}
	return added
}

func init() {
	RegisterLayouts(loadConfig())
}
