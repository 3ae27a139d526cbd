package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Letters returns the members of set as sorted one-rune strings.
func Letters(set mapset.Set[rune]) []string {
	rs := make([]rune, 0, set.Size())
	set.Each(func(r rune) { rs = append(rs, r) })
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Spaced separates the runes of s with single spaces.
func Spaced(s string) string {
	rs := []rune(s)
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// Render produces the three-line summary shown before every prompt:
//
//	Mystery:  _ e _ _ o   _ o _ _ _
//	Guessed letters: e, o
//	Wrong guesses (0/6): (none)
func Render(secret string, correct, wrong mapset.Set[rune], limit int) string {
	all := mapset.New[rune]()
	correct.Each(all.Put)
	wrong.Each(all.Put)

	guessed := "(none yet)"
	if all.Size() > 0 {
		guessed = strings.Join(Letters(all), ", ")
	}
	missed := "(none)"
	if wrong.Size() > 0 {
		missed = strings.Join(Letters(wrong), ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mystery:  %s\n", Spaced(Mask(secret, correct)))
	fmt.Fprintf(&b, "Guessed letters: %s\n", guessed)
	fmt.Fprintf(&b, "Wrong guesses (%d/%d): %s\n", wrong.Size(), limit, missed)
	return b.String()
}

// Render summarises g; see the package-level Render.
func (g *Game) Render() string {
	return Render(g.Secret, g.Correct, g.Wrong, g.WrongLimit)
}
