package board

import (
	"errors"
	"math/rand"
	"testing"
)

// scenarioRows is a stable 4x4 board whose bottom row reads A A B C and
// where (0,1) holds A, so swapping (2,0) with (0,1) completes A A A.
var scenarioRows = []string{
	"CEFD",
	"EFDE",
	"ADEF",
	"AABC",
}

func newScenarioBoard(t *testing.T, moves int, opts ...Option) (*Board, *scriptedTokens) {
	t.Helper()
	src := &scriptedTokens{seq: []Token{tok('A'), tok('B'), tok('A')}}
	b, err := FromGrid(gridFromRows(t, scenarioRows...), moves, src, opts...)
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	if src.used != 0 {
		t.Fatalf("scenario board should already be stable, %d tokens drawn", src.used)
	}
	return b, src
}

func TestScenarioSwapCompletesRow(t *testing.T) {
	b, _ := newScenarioBoard(t, 10)

	// Apply the swap by hand first to check the scan result in isolation
	g := b.Grid()
	ta, tb := g.Token(C(2, 0)), g.Token(C(0, 1))
	_ = g.Set(C(2, 0), tb)
	_ = g.Set(C(0, 1), ta)
	assertMatch(t, Scan(g), []Cell{C(0, 0), C(1, 0), C(2, 0)})

	res, err := b.SwapTile(C(2, 0), C(0, 1))
	if err != nil {
		t.Fatalf("SwapTile() failed: %v", err)
	}

	if res.Outcome != Resolved {
		t.Fatalf("Outcome = %v, want resolved", res.Outcome)
	}
	if res.Cleared != 3 || res.ScoreDelta != 3 {
		t.Errorf("Cleared/ScoreDelta = %d/%d, want 3/3", res.Cleared, res.ScoreDelta)
	}
	if res.Score != 3 || b.Score() != 3 {
		t.Errorf("Score = %d (board %d), want 3", res.Score, b.Score())
	}
	if res.MovesLeft != 9 || b.MovesLeft() != 9 {
		t.Errorf("MovesLeft = %d (board %d), want 9", res.MovesLeft, b.MovesLeft())
	}
	if res.GameOver {
		t.Error("game should not be over")
	}

	// Columns 0-2 fall by one; the top row is refilled with A B A
	want := []string{
		"ABAD",
		"CEFE",
		"EFDF",
		"BDEC",
	}
	if got := rowsOf(b.Grid()); !equalRows(got, want) {
		t.Errorf("board after swap = %v, want %v", got, want)
	}
	if HasMatch(b.Grid()) {
		t.Error("board should be stable after SwapTile")
	}
}

func TestSwapNoMatchRollsBack(t *testing.T) {
	b, src := newScenarioBoard(t, 10)
	before := b.Grid()

	res, err := b.SwapTile(C(0, 0), C(3, 3))
	if err != nil {
		t.Fatalf("SwapTile() failed: %v", err)
	}

	if res.Outcome != NoMatch {
		t.Fatalf("Outcome = %v, want no_match", res.Outcome)
	}
	if !b.Grid().Equal(before) {
		t.Errorf("board changed after NoMatch: %v", rowsOf(b.Grid()))
	}
	if b.MovesLeft() != 10 || res.MovesLeft != 10 {
		t.Errorf("NoMatch must not consume a move, moves = %d", b.MovesLeft())
	}
	if b.Score() != 0 {
		t.Errorf("Score = %d, want 0", b.Score())
	}
	if src.used != 0 {
		t.Errorf("NoMatch should not draw refill tokens, drew %d", src.used)
	}
}

func TestSwapLastMoveEndsGame(t *testing.T) {
	hookCalls := 0
	hookScore := -1
	b, _ := newScenarioBoard(t, 1, WithGameOverHook(func(score int) {
		hookCalls++
		hookScore = score
	}))

	res, err := b.SwapTile(C(2, 0), C(0, 1))
	if err != nil {
		t.Fatalf("SwapTile() failed: %v", err)
	}

	if res.Outcome != Resolved || res.MovesLeft != 0 || !res.GameOver {
		t.Fatalf("got %+v, want Resolved with movesLeft 0 and gameOver", res)
	}
	if b.State() != GameOver || !b.IsOver() {
		t.Errorf("State = %v, want game_over", b.State())
	}
	if hookCalls != 1 || hookScore != 3 {
		t.Errorf("hook called %d times with %d, want once with 3", hookCalls, hookScore)
	}

	// Every later request is rejected without touching anything
	grid, score, moves := b.Grid(), b.Score(), b.MovesLeft()
	requests := [][2]Cell{
		{C(0, 0), C(1, 0)},
		{C(0, 0), C(0, 0)},
		{C(9, 9), C(0, 0)},
	}
	for _, req := range requests {
		res, err := b.SwapTile(req[0], req[1])
		if err != nil {
			t.Errorf("SwapTile(%v, %v) after game over returned error %v", req[0], req[1], err)
		}
		if res.Outcome != Rejected {
			t.Errorf("SwapTile(%v, %v) after game over = %v, want rejected", req[0], req[1], res.Outcome)
		}
	}
	if !b.Grid().Equal(grid) || b.Score() != score || b.MovesLeft() != moves {
		t.Error("rejected swaps must not change the board")
	}
	if hookCalls != 1 {
		t.Errorf("hook called %d times, want exactly once", hookCalls)
	}
}

func TestSwapInvalidCells(t *testing.T) {
	rows := []string{
		"CEF#",
		"EFDE",
		"ADEF",
		"AABC",
	}
	b, err := FromGrid(gridFromRows(t, rows...), 5, &scriptedTokens{seq: []Token{tok('A')}})
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	before := b.Grid()

	tests := []struct {
		name    string
		a, b    Cell
		wantErr error
	}{
		{"same cell", C(1, 1), C(1, 1), ErrInvalidCell},
		{"disabled first", C(3, 3), C(2, 3), ErrInvalidCell},
		{"disabled second", C(3, 2), C(3, 3), ErrInvalidCell},
		{"out of bounds", C(4, 0), C(3, 0), ErrOutOfBounds},
		{"negative", C(0, 0), C(0, -1), ErrOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.SwapTile(tc.a, tc.b)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("SwapTile() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if !b.Grid().Equal(before) || b.MovesLeft() != 5 || b.Score() != 0 {
		t.Error("invalid swaps must leave the board unchanged")
	}
}

func TestNewBoardStartsStable(t *testing.T) {
	cfg := Config{
		Columns:       8,
		Rows:          8,
		Disabled:      []Cell{C(0, 0), C(7, 0), C(0, 7), C(7, 7), C(3, 4), C(4, 4)},
		StartingMoves: 20,
		Kinds:         5,
	}

	for seed := int64(1); seed <= 20; seed++ {
		b, err := New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		if HasMatch(b.Grid()) {
			t.Fatalf("seed %d: starting board has a match", seed)
		}
		if b.Score() != 0 || b.MovesLeft() != 20 || b.State() != Playing {
			t.Fatalf("seed %d: bad initial counters score=%d moves=%d state=%v",
				seed, b.Score(), b.MovesLeft(), b.State())
		}
		for _, c := range cfg.Disabled {
			st, err := b.Get(c)
			if err != nil || !st.Disabled || !st.Empty() {
				t.Fatalf("seed %d: disabled cell %v = %+v, %v", seed, c, st, err)
			}
		}
		if b.Grid().EmptyCount() != 0 {
			t.Fatalf("seed %d: active cells left empty", seed)
		}
	}
}

func TestNewBoardDeterministic(t *testing.T) {
	cfg := Config{Columns: 6, Rows: 7, StartingMoves: 15, Kinds: 4}

	b1, err := New(cfg, rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b2, err := New(cfg, rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if !b1.Grid().Equal(b2.Grid()) {
		t.Errorf("same seed should produce same board:\n%v\nvs\n%v", rowsOf(b1.Grid()), rowsOf(b2.Grid()))
	}

	// Same swaps on both boards stay in lockstep
	for _, c := range b1.Grid().ActiveCells() {
		right := c.Add(1, 0)
		if !b1.InBounds(right) {
			continue
		}
		r1, err1 := b1.SwapTile(c, right)
		r2, err2 := b2.SwapTile(c, right)
		if err1 != nil || err2 != nil {
			t.Fatalf("SwapTile() failed: %v / %v", err1, err2)
		}
		if r1.Outcome != r2.Outcome || r1.Score != r2.Score {
			t.Fatalf("boards diverged at %v: %+v vs %+v", c, r1, r2)
		}
	}
	if !b1.Grid().Equal(b2.Grid()) {
		t.Error("boards diverged after identical swaps")
	}
}

func TestNewBoardInvalidConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"one kind", Config{Columns: 4, Rows: 4, StartingMoves: 5, Kinds: 1}, ErrInvalidConfig},
		{"no moves", Config{Columns: 4, Rows: 4, StartingMoves: 0, Kinds: 4}, ErrInvalidConfig},
		{"empty grid", Config{Columns: 0, Rows: 4, StartingMoves: 5, Kinds: 4}, ErrInvalidConfig},
		{"disabled outside", Config{Columns: 4, Rows: 4, StartingMoves: 5, Kinds: 4, Disabled: []Cell{C(4, 4)}}, ErrOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, rng); !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if _, err := New(Config{Columns: 4, Rows: 4, StartingMoves: 5, Kinds: 4}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() with nil rng error = %v, want ErrInvalidConfig", err)
	}
}

func TestRandomPlayAccounting(t *testing.T) {
	cfg := Config{
		Columns:       7,
		Rows:          7,
		Disabled:      []Cell{C(3, 3), C(0, 6), C(6, 6)},
		StartingMoves: 12,
		Kinds:         4,
	}
	rng := rand.New(rand.NewSource(99))

	gameOvers := 0
	b, err := New(cfg, rng, WithGameOverHook(func(int) { gameOvers++ }))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	dirs := [][2]int{{1, 0}, {0, 1}}
	for attempt := 0; attempt < 2000 && !b.IsOver(); attempt++ {
		from := C(rng.Intn(cfg.Columns), rng.Intn(cfg.Rows))
		d := dirs[rng.Intn(len(dirs))]
		to := from.Add(d[0], d[1])
		if !b.InBounds(from) || !b.InBounds(to) || b.IsDisabled(from) || b.IsDisabled(to) {
			continue
		}

		before := b.Grid()
		scoreBefore, movesBefore := b.Score(), b.MovesLeft()

		res, err := b.SwapTile(from, to)
		if err != nil {
			t.Fatalf("SwapTile(%v, %v) failed: %v", from, to, err)
		}

		switch res.Outcome {
		case NoMatch:
			if !b.Grid().Equal(before) {
				t.Fatalf("NoMatch changed the board")
			}
			if b.MovesLeft() != movesBefore || b.Score() != scoreBefore {
				t.Fatalf("NoMatch changed counters")
			}
		case Resolved:
			sum := 0
			for _, n := range res.Passes {
				sum += n
			}
			if res.ScoreDelta != res.Cleared || res.Cleared != sum || res.Cleared < MinRun {
				t.Fatalf("inconsistent result %+v", res)
			}
			if b.Score() != scoreBefore+res.ScoreDelta {
				t.Fatalf("Score = %d, want %d", b.Score(), scoreBefore+res.ScoreDelta)
			}
			if b.MovesLeft() != movesBefore-1 {
				t.Fatalf("MovesLeft = %d, want %d", b.MovesLeft(), movesBefore-1)
			}
			if HasMatch(b.Grid()) {
				t.Fatal("board not stable after Resolved")
			}
		default:
			t.Fatalf("unexpected outcome %v while playing", res.Outcome)
		}
	}

	if !b.IsOver() {
		t.Fatal("expected the move budget to run out")
	}
	if b.MovesLeft() != 0 || gameOvers != 1 {
		t.Errorf("MovesLeft = %d, hook calls = %d; want 0 and 1", b.MovesLeft(), gameOvers)
	}
}

func TestSnapshot(t *testing.T) {
	rows := []string{
		"CEF#",
		"EFDE",
		"ADEF",
		"AABC",
	}
	b, err := FromGrid(gridFromRows(t, rows...), 7, &scriptedTokens{seq: []Token{tok('A')}})
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}

	snap := b.Snapshot()
	if snap.Columns != 4 || snap.Rows != 4 {
		t.Errorf("size = %dx%d, want 4x4", snap.Columns, snap.Rows)
	}
	if snap.MovesLeft != 7 || snap.Score != 0 || snap.State != Playing {
		t.Errorf("counters = %+v", snap)
	}
	if snap.Tokens[0][2] != tok('B') {
		t.Errorf("Tokens[0][2] = %d, want B", snap.Tokens[0][2])
	}
	if len(snap.Disabled) != 1 || snap.Disabled[0] != C(3, 3) {
		t.Errorf("Disabled = %v, want [(3,3)]", snap.Disabled)
	}
	if snap.Tokens[3][3] != None {
		t.Error("disabled cell should snapshot as None")
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b Cell
		want bool
	}{
		{C(0, 0), C(1, 0), true},
		{C(2, 2), C(2, 1), true},
		{C(0, 0), C(1, 1), false},
		{C(0, 0), C(0, 0), false},
		{C(0, 0), C(2, 0), false},
	}
	for _, tc := range tests {
		if got := Adjacent(tc.a, tc.b); got != tc.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
