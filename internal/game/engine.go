// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create new games around a secret word or phrase.
//   - Validate and apply guesses (single letters or the whole phrase).
//   - Keep the correct and wrong sets disjoint; classify is the only writer.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Letters are case-folded with unicode.ToLower; the secret keeps its casing.
//   - A wrong phrase guess costs the lower-cased first rune of the guess, even
//     when that rune is not a letter.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"
)

// New constructs a game for secret with the default wrong-guess limit.
func New(secret string) *Game {
	g := &Game{
		ID:         randomID(),
		Secret:     secret,
		WrongLimit: WrongLimit,
		Correct:    mapset.New[rune](),
		Wrong:      mapset.New[rune](),
		state:      StatePlaying,
	}
	// A secret without letters is revealed from the start.
	g.settle()
	return g
}

// State reports the current lifecycle state.
func (g *Game) State() State { return g.state }

// ApplyGuess validates one line of player input and applies it.
// Returns: the outcome, the resulting state, or a rejection error.
//
// Validation rules:
//   - Game must not be finished.
//   - Input is trimmed; empty input is rejected.
//   - More than one rune is a full-phrase guess, compared case-insensitively.
//   - A single rune must be a letter not guessed before.
func (g *Game) ApplyGuess(input string) (Outcome, State, error) {
	if g.state.Finished() {
		return "", g.state, ErrFinished
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return "", g.state, ErrEmptyGuess
	}

	runes := []rune(input)
	if len(runes) > 1 {
		g.Guesses++
		if strings.ToLower(input) == strings.ToLower(g.Secret) {
			g.state = StateWon
			return OutcomePhraseHit, g.state, nil
		}
		g.penalize(runes[0])
		g.settle()
		return OutcomePhraseMiss, g.state, nil
	}

	r := unicode.ToLower(runes[0])
	if !unicode.IsLetter(r) {
		return "", g.state, ErrNotLetter
	}
	if g.Correct.Has(r) || g.Wrong.Has(r) {
		return "", g.state, ErrDuplicate
	}
	g.Guesses++
	out := g.classify(r)
	g.settle()
	return out, g.state, nil
}

// Classify files r into the correct or wrong set without any of the input
// checks ApplyGuess performs. Scripted runs use it directly. A rune that is
// already classified keeps its classification.
func (g *Game) Classify(r rune) Outcome {
	out := g.classify(unicode.ToLower(r))
	g.settle()
	return out
}

// Revealed reports whether every letter of the secret has been guessed.
func (g *Game) Revealed() bool {
	for _, c := range g.Secret {
		if unicode.IsLetter(c) && !g.Correct.Has(unicode.ToLower(c)) {
			return false
		}
	}
	return true
}

// Mask returns the secret with unguessed letters hidden.
func (g *Game) Mask() string { return Mask(g.Secret, g.Correct) }

// Mask hides every letter of secret whose lower-case form is not in correct.
// Non-letters pass through. The result has as many runes as secret.
func Mask(secret string, correct mapset.Set[rune]) string {
	var b strings.Builder
	b.Grow(len(secret))
	for _, c := range secret {
		switch {
		case !unicode.IsLetter(c):
			b.WriteRune(c)
		case correct.Has(unicode.ToLower(c)):
			b.WriteRune(c)
		default:
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

// classify is the single point where letters enter either set.
// r must already be lower-case.
func (g *Game) classify(r rune) Outcome {
	switch {
	case g.Correct.Has(r):
		return OutcomeHit
	case g.Wrong.Has(r):
		return OutcomeMiss
	case strings.ContainsRune(strings.ToLower(g.Secret), r):
		g.Correct.Put(r)
		return OutcomeHit
	default:
		g.Wrong.Put(r)
		return OutcomeMiss
	}
}

// penalize records a failed phrase guess against its first rune.
// A rune already in the correct set is left alone so the sets stay disjoint.
func (g *Game) penalize(first rune) {
	r := unicode.ToLower(first)
	if g.Correct.Has(r) {
		log.Debug().Str("game", g.ID).Str("rune", string(r)).Msg("phrase penalty skipped: rune already correct")
		return
	}
	g.Wrong.Put(r)
}

// settle moves a playing game to won or lost. Win is checked first.
func (g *Game) settle() {
	if g.state.Finished() {
		return
	}
	if g.Revealed() {
		g.state = StateWon
	} else if g.Wrong.Size() >= g.WrongLimit {
		g.state = StateLost
	}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
