package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeWords(t *testing.T, entries ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"--demo"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run --demo: %v", err)
	}
	if !strings.Contains(out.String(), "Demo result: win") {
		t.Errorf("demo output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Enter a letter") {
		t.Errorf("demo must not prompt")
	}
}

func TestRunInteractiveAndStats(t *testing.T) {
	ctx := context.Background()
	wordsFile := writeWords(t, "python")
	dbPath := filepath.Join(t.TempDir(), "data", "hangman.db")

	var out bytes.Buffer
	args := []string{"--words-file", wordsFile, "--db", dbPath}
	if err := run(ctx, args, strings.NewReader("x\nPython\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Correct! You guessed the full word: python") {
		t.Fatalf("play output:\n%s", out.String())
	}

	out.Reset()
	if err := run(ctx, []string{"--db", dbPath, "stats"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run stats: %v", err)
	}
	if !strings.Contains(out.String(), "Played: 1  Won: 1  Lost: 0") {
		t.Errorf("stats output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2 guesses, 1 wrong") {
		t.Errorf("stats output missing result row:\n%s", out.String())
	}
}

func TestRunEndOfInputSaysGoodbye(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--words-file", writeWords(t, "hangman")}
	if err := run(context.Background(), args, strings.NewReader("h\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	s := out.String()
	if !strings.HasSuffix(s, "\nGoodbye!\n") {
		t.Errorf("missing farewell:\n%s", s)
	}
	if strings.Contains(s, "The word was") {
		t.Errorf("aborted session revealed the secret")
	}
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "nope.txt")
	if err := run(ctx, []string{"--words-file", missing}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing words file")
	}
	if err := run(ctx, []string{"stats"}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error for stats without --db")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := openDB(filepath.Join(t.TempDir(), "m.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := migrate(db); err != nil {
			t.Fatalf("migrate pass %d: %v", i+1, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("%d migrations recorded, want 1", n)
	}
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='results'`).Scan(&name)
	if err == sql.ErrNoRows {
		t.Error("results table missing")
	}
}
