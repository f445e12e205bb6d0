package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second
	Seed     int64 // RNG seed for deterministic boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	MovesLeft int  // Remaining move budget
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
}
