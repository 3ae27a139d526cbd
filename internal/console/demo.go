package console

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/robalobadob/hangman/internal/game"
)

// DemoSecret and DemoScript drive the non-interactive demo.
var (
	DemoSecret = "hello world"
	DemoScript = []string{"e", "x", "o", "l", "h", "w", "r", "d"}
)

// Demo applies script to secret one guess at a time, rendering after each,
// and reports whether the secret ended fully revealed. Entries that are not
// exactly one rune are shown but not applied. There is no loss check.
func Demo(out io.Writer, secret string, script []string) bool {
	fmt.Fprintln(out, "Demo mode: mystery word is:", secret)
	g := game.New(secret)
	for _, guess := range script {
		if utf8.RuneCountInString(guess) == 1 {
			r, _ := utf8.DecodeRuneInString(guess)
			g.Classify(r)
		}
		fmt.Fprintf(out, "\nAfter guessing: %s\n", guess)
		fmt.Fprint(out, g.Render())
	}

	if g.Revealed() {
		fmt.Fprintln(out, "\nDemo result: win")
		return true
	}
	fmt.Fprintln(out, "\nDemo result: still hidden")
	return false
}
