// Package board implements the match-3 board state machine: a grid of
// tokens with permanently disabled cells, run detection, cascade resolution
// (clear, gravity, refill) and the swap controller that tracks score, the
// move budget and game over.
//
// The package has no external dependencies so it can be driven by any
// front-end and tested deterministically with a seeded random source.
package board

// Token identifies the match category of a tile. Only equality matters for
// matching. None marks an empty cell.
type Token uint8

// None is the empty token.
const None Token = 0

// IsNone reports whether t is the empty token.
func (t Token) IsNone() bool {
	return t == None
}

// RandomSource is the randomness used to pick tokens.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// TokenSource produces the token placed into a vacated cell.
type TokenSource interface {
	Next() Token
}

// RandomTokens draws tokens uniformly from 1..Kinds.
type RandomTokens struct {
	Kinds int
	Rand  RandomSource
}

// NewRandomTokens creates a token source over the given number of kinds.
func NewRandomTokens(kinds int, rng RandomSource) *RandomTokens {
	return &RandomTokens{Kinds: kinds, Rand: rng}
}

// Next returns a random concrete token.
// Any token may be returned, including one that immediately re-matches;
// the resolver simply keeps clearing until the board settles.
func (r *RandomTokens) Next() Token {
	return Token(r.Rand.Intn(r.Kinds) + 1)
}
