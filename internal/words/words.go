// internal/words/words.go
//
// Provides the secret word source for game sessions.
//
// Responsibilities:
//   - Load the candidate list from a file or fall back to the embedded default.
//   - Choose one entry uniformly at random per session.
//   - Choose a deterministic entry per UTC day (see the daily package).
//
// Word Lists:
//   - One word or phrase per line, casing and inner punctuation kept as written.
//   - Blank lines and lines starting with "#" are skipped.
//
// Constraints:
//   • A list is read-only once loaded; callers share it freely.
//   • An empty list is an error.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/daily"
)

// ErrEmpty is returned when a word list has no usable entries.
var ErrEmpty = errors.New("words: list is empty")

// Source supplies secrets to new sessions.
type Source interface {
	Choose() string
}

// Fixed always yields the same secret. Scripted runs and tests use it.
type Fixed string

// Choose returns f.
func (f Fixed) Choose() string { return string(f) }

// List is an ordered, immutable set of candidate secrets.
type List struct {
	entries []string
}

// NewList copies entries into a List, dropping blanks and comments.
func NewList(entries []string) (*List, error) {
	l := &List{entries: normalizeLines(entries)}
	if len(l.entries) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// Load reads the list at path, or the embedded default when path is "".
func Load(path string) (*List, error) {
	if path == "" {
		lines, err := assets.WordList()
		if err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
		return NewList(lines)
	}
	lines, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := NewList(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// readWordFile loads one entry per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalizeLines trims entries and skips blanks and "#" comments.
func normalizeLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Choose returns a cryptographically random entry.
func (l *List) Choose() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.entries))))
	if err != nil {
		return l.entries[0]
	}
	return l.entries[nBig.Int64()]
}

// Daily returns the entry assigned to the UTC day of t.
func (l *List) Daily(t time.Time, salt string) string {
	return l.entries[daily.WordIndex(t, salt, len(l.entries))]
}

// Len reports the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the list.
func (l *List) Entries() []string {
	return append([]string(nil), l.entries...)
}
