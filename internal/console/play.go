// internal/console/play.go
//
// Line-oriented terminal front end for a Hangman game.
// Responsibilities:
//   - Render the game before every prompt and announce win/loss with the secret.
//   - Read one line per turn and hand it to the engine.
//   - Explain every rejected guess; rejected guesses never change the game.
//   - Surface end-of-input and cancellation as ErrAborted to the caller.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

// Prompt is printed before every read.
const Prompt = "Enter a letter, or type the full word to guess: "

// ErrAborted ends a session without a result. The wrapped cause is io.EOF or
// the context error.
var ErrAborted = errors.New("session aborted")

// Play runs g to completion against in/out.
// Returns the terminal state, or game.StateAborted with an ErrAborted error.
func Play(ctx context.Context, g *game.Game, in io.Reader, out io.Writer) (game.State, error) {
	lines := newLineReader(ctx, in)
	for {
		fmt.Fprint(out, "\n"+g.Render())

		switch g.State() {
		case game.StateWon:
			fmt.Fprintf(out, "\nYou win! The word was:\n %s\n", g.Secret)
			return game.StateWon, nil
		case game.StateLost:
			fmt.Fprintf(out, "\nOut of guesses. You lose. The word was:\n %s\n", g.Secret)
			return game.StateLost, nil
		}

		fmt.Fprint(out, Prompt)
		line, err := lines.next()
		if err != nil {
			return game.StateAborted, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		outcome, _, err := g.ApplyGuess(line)
		if err != nil {
			log.Debug().Str("game", g.ID).Err(err).Msg("guess rejected")
			fmt.Fprintln(out, rejection(err))
			continue
		}
		log.Debug().Str("game", g.ID).Str("outcome", string(outcome)).Msg("guess applied")

		switch outcome {
		case game.OutcomeHit:
			fmt.Fprintln(out, "Good guess!")
		case game.OutcomeMiss:
			fmt.Fprintln(out, "Nope.")
		case game.OutcomePhraseMiss:
			fmt.Fprintln(out, "That's not the word.")
		case game.OutcomePhraseHit:
			fmt.Fprintf(out, "Correct! You guessed the full word: %s\n", g.Secret)
			return game.StateWon, nil
		}
	}
}

func rejection(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		return "Please enter something."
	case errors.Is(err, game.ErrNotLetter):
		return "Please enter a letter (a-z)."
	case errors.Is(err, game.ErrDuplicate):
		return "You already guessed that letter."
	default:
		return err.Error()
	}
}

// lineReader moves the blocking read onto a goroutine so that next can give
// up when ctx is cancelled.
type lineReader struct {
	ctx   context.Context
	lines chan string
	errc  chan error
}

func newLineReader(ctx context.Context, r io.Reader) *lineReader {
	lr := &lineReader{
		ctx:   ctx,
		lines: make(chan string),
		errc:  make(chan error, 1),
	}
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lr.lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		lr.errc <- err
	}()
	return lr
}

func (lr *lineReader) next() (string, error) {
	select {
	case line := <-lr.lines:
		return line, nil
	case err := <-lr.errc:
		return "", err
	case <-lr.ctx.Done():
		return "", lr.ctx.Err()
	}
}
