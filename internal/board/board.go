package board

import "fmt"

// Config describes a board to initialize.
type Config struct {
	Columns       int
	Rows          int
	Disabled      []Cell
	StartingMoves int
	Kinds         int // Number of distinct tokens, drawn as 1..Kinds
}

// Board owns a grid together with the score, move budget and game state.
// All mutation goes through SwapTile. A Board is not safe for concurrent use;
// each game session owns its own instance.
type Board struct {
	grid       *Grid
	resolver   *Resolver
	score      int
	moves      int
	state      State
	onGameOver func(score int)
}

// Option configures a Board.
type Option func(*options)

type options struct {
	tokens     TokenSource
	onGameOver func(score int)
}

// WithGameOverHook registers fn to be called exactly once, with the final
// score, when the board transitions to GameOver.
func WithGameOverHook(fn func(score int)) Option {
	return func(o *options) {
		o.onGameOver = fn
	}
}

// WithTokenSource overrides the token source used for the initial fill and
// every refill. The random source passed to New is ignored when set.
func WithTokenSource(src TokenSource) Option {
	return func(o *options) {
		o.tokens = src
	}
}

// New creates a board with a random token in every active cell, then
// resolves it so the starting board holds no match. Score starts at 0.
func New(cfg Config, rng RandomSource, opts ...Option) (*Board, error) {
	if cfg.Kinds < 2 {
		return nil, fmt.Errorf("%w: need at least 2 token kinds, got %d", ErrInvalidConfig, cfg.Kinds)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokens == nil {
		if rng == nil {
			return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
		}
		o.tokens = NewRandomTokens(cfg.Kinds, rng)
	}

	grid, err := NewGrid(cfg.Columns, cfg.Rows, cfg.Disabled)
	if err != nil {
		return nil, err
	}
	for _, c := range grid.ActiveCells() {
		grid.put(c, o.tokens.Next())
	}

	return build(grid, cfg.StartingMoves, o)
}

// FromGrid creates a board around a prepared grid, taking ownership of it.
// Empty active cells are filled and any existing match is resolved, so the
// board starts stable just like one built by New.
func FromGrid(grid *Grid, startingMoves int, tokens TokenSource, opts ...Option) (*Board, error) {
	if grid == nil || tokens == nil {
		return nil, fmt.Errorf("%w: nil grid or token source", ErrInvalidConfig)
	}
	o := options{tokens: tokens}
	for _, opt := range opts {
		opt(&o)
	}
	return build(grid, startingMoves, o)
}

func build(grid *Grid, startingMoves int, o options) (*Board, error) {
	if startingMoves < 1 {
		return nil, fmt.Errorf("%w: starting moves must be positive, got %d", ErrInvalidConfig, startingMoves)
	}

	b := &Board{
		grid:       grid,
		resolver:   NewResolver(o.tokens),
		moves:      startingMoves,
		state:      Playing,
		onGameOver: o.onGameOver,
	}

	b.resolver.Refill(grid)
	b.resolver.Resolve(grid)

	return b, nil
}

// SwapTile exchanges the tokens at from and to and resolves the outcome.
//
// Adjacency is not checked here; the input layer decides which pairs may be
// swapped (see Adjacent). An over board returns Rejected for any request.
// Out-of-bounds, disabled or identical cells are rejected with an error and
// leave the board unchanged.
func (b *Board) SwapTile(from, to Cell) (SwapResult, error) {
	if b.state == GameOver {
		return b.result(Rejected), nil
	}
	if err := b.validateSwap(from, to); err != nil {
		return SwapResult{}, err
	}

	b.exchange(from, to)

	if !HasMatch(b.grid) {
		b.exchange(from, to)
		return b.result(NoMatch), nil
	}

	b.moves--
	cascade := b.resolver.Resolve(b.grid)
	b.score += cascade.Cleared

	if b.moves <= 0 {
		b.moves = 0
		b.endGame()
	}

	res := b.result(Resolved)
	res.Cleared = cascade.Cleared
	res.ScoreDelta = cascade.Cleared
	res.Passes = cascade.Passes
	return res, nil
}

func (b *Board) validateSwap(from, to Cell) error {
	for _, c := range []Cell{from, to} {
		if !b.grid.InBounds(c) {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
		}
		if b.grid.IsDisabled(c) {
			return fmt.Errorf("%w: %v is disabled", ErrInvalidCell, c)
		}
	}
	if from == to {
		return fmt.Errorf("%w: cannot swap %v with itself", ErrInvalidCell, from)
	}
	return nil
}

func (b *Board) exchange(from, to Cell) {
	tf, tt := b.grid.Token(from), b.grid.Token(to)
	b.grid.put(from, tt)
	b.grid.put(to, tf)
}

func (b *Board) endGame() {
	if b.state == GameOver {
		return
	}
	b.state = GameOver
	if b.onGameOver != nil {
		b.onGameOver(b.score)
	}
}

func (b *Board) result(o Outcome) SwapResult {
	return SwapResult{
		Outcome:   o,
		Score:     b.score,
		MovesLeft: b.moves,
		GameOver:  b.state == GameOver,
	}
}

// Columns returns the board width.
func (b *Board) Columns() int {
	return b.grid.Columns()
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.grid.Rows()
}

// Token returns the token at c (None for out-of-bounds or disabled cells).
func (b *Board) Token(c Cell) Token {
	return b.grid.Token(c)
}

// Get returns the state of a cell.
func (b *Board) Get(c Cell) (CellState, error) {
	return b.grid.Get(c)
}

// IsDisabled reports whether c is a disabled cell.
func (b *Board) IsDisabled(c Cell) bool {
	return b.grid.IsDisabled(c)
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return b.grid.InBounds(c)
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() *Grid {
	return b.grid.Clone()
}

// Score returns the accumulated score.
func (b *Board) Score() int {
	return b.score
}

// MovesLeft returns the remaining move budget.
func (b *Board) MovesLeft() int {
	return b.moves
}

// State returns the current game state.
func (b *Board) State() State {
	return b.state
}

// IsOver reports whether the game has ended.
func (b *Board) IsOver() bool {
	return b.state == GameOver
}
