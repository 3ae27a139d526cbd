package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/hangman/internal/game"
)

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New("python")

	if err := s.Save(ctx, g); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != g {
		t.Errorf("Get returned a different game")
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSerializes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New("abcdefghijklmnopqrstuvwxyz")
	_ = s.Save(ctx, g)

	var wg sync.WaitGroup
	for _, r := range "abcdefghijklmnopqrstuvwxyz" {
		wg.Add(1)
		go func(letter string) {
			defer wg.Done()
			err := s.Update(ctx, g.ID, func(g *game.Game) error {
				_, _, err := g.ApplyGuess(letter)
				return err
			})
			if err != nil {
				t.Errorf("Update(%s): %v", letter, err)
			}
		}(string(r))
	}
	wg.Wait()

	if g.State() != game.StateWon || g.Guesses != 26 {
		t.Errorf("state %s after %d guesses, want won after 26", g.State(), g.Guesses)
	}
	if err := s.Update(ctx, "nope", func(*game.Game) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(nope) error = %v, want ErrNotFound", err)
	}
}
