package history

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/game"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := fs.ReadFile(assets.FS, "sql/001_results.sql")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return NewStore(db)
}

func finished(t *testing.T, secret string, guesses ...string) *game.Game {
	t.Helper()
	g := game.New(secret)
	for _, in := range guesses {
		if _, _, err := g.ApplyGuess(in); err != nil {
			t.Fatalf("ApplyGuess(%q): %v", in, err)
		}
	}
	return g
}

func TestRecordAndSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	won := finished(t, "python", "z", "python")
	lost := finished(t, "python", "a", "b", "c", "d", "e", "f")

	for _, g := range []*game.Game{won, lost} {
		r, err := FromGame(g, "console")
		if err != nil {
			t.Fatalf("FromGame: %v", err)
		}
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	// duplicate insert is ignored
	r, _ := FromGame(won, "console")
	if err := s.Record(ctx, r); err != nil {
		t.Fatalf("Record duplicate: %v", err)
	}

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum != (Summary{Played: 2, Won: 1, Lost: 1}) {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a1", "b2", "c3"} {
		err := s.Record(ctx, Result{
			GameID:   id,
			Mode:     "random",
			Secret:   "hangman",
			Outcome:  "won",
			Guesses:  i + 1,
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].GameID != "c3" || got[1].GameID != "b2" {
		t.Fatalf("recent = %+v", got)
	}
	if !got[0].PlayedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("played_at = %v", got[0].PlayedAt)
	}
}

func TestRecordUnfinished(t *testing.T) {
	s := newTestStore(t)
	if _, err := FromGame(game.New("python"), "console"); !errors.Is(err, ErrUnfinished) {
		t.Errorf("FromGame error = %v, want ErrUnfinished", err)
	}
	err := s.Record(context.Background(), Result{GameID: "x", Outcome: "aborted"})
	if !errors.Is(err, ErrUnfinished) {
		t.Errorf("Record error = %v, want ErrUnfinished", err)
	}
}
