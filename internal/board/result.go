package board

// State is the lifecycle phase of a board.
type State int

const (
	Playing State = iota
	GameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of a swap request.
type Outcome int

const (
	// Rejected means the game is over; nothing changed.
	Rejected Outcome = iota
	// NoMatch means the swap produced no run and was rolled back.
	NoMatch
	// Resolved means the swap matched and the cascade ran to a stable board.
	Resolved
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case NoMatch:
		return "no_match"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// SwapResult is returned by Board.SwapTile.
// Cleared, ScoreDelta and Passes are only non-zero for Resolved.
type SwapResult struct {
	Outcome    Outcome
	Cleared    int   // Cells cleared across every cascade pass
	ScoreDelta int   // Score gained by this swap (equals Cleared)
	Score      int   // Score after the swap
	MovesLeft  int   // Move budget after the swap
	GameOver   bool  // Whether the board is now over
	Passes     []int // Cells cleared per cascade pass
}
