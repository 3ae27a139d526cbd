// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - State: coarse lifecycle of a session (playing/won/lost/aborted).
//   - Outcome: how an accepted guess was classified.
//   - Game: state for a single in-progress or finished session.

package game

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
)

// WrongLimit is the number of wrong guesses that ends a session in a loss.
const WrongLimit = 6

// Placeholder stands in for every letter that has not been guessed yet.
const Placeholder = '_'

// State is the lifecycle state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
	StateAborted State = "aborted" // only ever set by the caller; the engine never aborts
)

// Finished reports whether s is terminal.
func (s State) Finished() bool { return s != StatePlaying }

// Outcome describes an accepted guess.
//   - "hit":         single letter present in the secret.
//   - "miss":        single letter absent from the secret.
//   - "phrase_hit":  full-phrase guess matched the secret.
//   - "phrase_miss": full-phrase guess did not match; a penalty was recorded.
type Outcome string

const (
	OutcomeHit        Outcome = "hit"
	OutcomeMiss       Outcome = "miss"
	OutcomePhraseHit  Outcome = "phrase_hit"
	OutcomePhraseMiss Outcome = "phrase_miss"
)

// Rejections. None of them mutate the game.
var (
	ErrEmptyGuess = errors.New("empty guess")
	ErrNotLetter  = errors.New("guess is not a letter")
	ErrDuplicate  = errors.New("letter already guessed")
	ErrFinished   = errors.New("game finished")
)

// Game holds the state of a single Hangman session.
type Game struct {
	ID         string           // Unique game identifier (random hex string).
	Secret     string           // Word or phrase to reveal, original casing.
	WrongLimit int              // Wrong guesses tolerated before a loss.
	Correct    mapset.Set[rune] // Lowercase letters known to be in the secret.
	Wrong      mapset.Set[rune] // Lowercase runes known not to be (or phrase penalties).
	Guesses    int              // Accepted guesses so far, letters and phrases.
	state      State
}
