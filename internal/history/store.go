// internal/history/store.go
//
// SQLite-backed record of finished sessions.
// Responsibilities:
//   - Insert one row per won or lost game (idempotent per game ID).
//   - Aggregate totals for the stats command and GET /stats.
//   - List the most recent results.
//
// The schema lives in assets/sql and is applied by the migrator in db.go.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrUnfinished is returned when recording a game that is still in play or
// was aborted.
var ErrUnfinished = errors.New("history: only won or lost games are recorded")

// Result is one finished session.
type Result struct {
	GameID       string    `json:"gameId"`
	Mode         string    `json:"mode"` // "console", "random", "daily", "fixed"
	Secret       string    `json:"secret"`
	Outcome      string    `json:"outcome"`
	Guesses      int       `json:"guesses"`
	WrongGuesses int       `json:"wrongGuesses"`
	PlayedAt     time.Time `json:"playedAt"`
}

// Summary aggregates every recorded result.
type Summary struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
}

// FromGame builds a Result for a finished game.
func FromGame(g *game.Game, mode string) (Result, error) {
	st := g.State()
	if st != game.StateWon && st != game.StateLost {
		return Result{}, ErrUnfinished
	}
	return Result{
		GameID:       g.ID,
		Mode:         mode,
		Secret:       g.Secret,
		Outcome:      string(st),
		Guesses:      g.Guesses,
		WrongGuesses: g.Wrong.Size(),
		PlayedAt:     time.Now().UTC(),
	}, nil
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts r. A second insert for the same game is ignored.
func (s *Store) Record(ctx context.Context, r Result) error {
	if r.Outcome != string(game.StateWon) && r.Outcome != string(game.StateLost) {
		return ErrUnfinished
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (game_id, mode, secret, outcome, guesses, wrong_guesses, played_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Mode, r.Secret, r.Outcome, r.Guesses, r.WrongGuesses,
		r.PlayedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Summary counts results by outcome.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(outcome = 'won'), 0),
               COALESCE(SUM(outcome = 'lost'), 0)
        FROM results`,
	).Scan(&sum.Played, &sum.Won, &sum.Lost)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	return sum, nil
}

// Recent returns up to limit results, newest first. Default limit is 10.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, mode, secret, outcome, guesses, wrong_guesses, played_at
        FROM results
        ORDER BY played_at DESC, id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var played string
		if err := rows.Scan(&r.GameID, &r.Mode, &r.Secret, &r.Outcome, &r.Guesses, &r.WrongGuesses, &played); err != nil {
			return nil, err
		}
		r.PlayedAt, _ = time.Parse(time.RFC3339, played)
		out = append(out, r)
	}
	return out, rows.Err()
}
