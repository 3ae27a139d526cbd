package game

import (
	"testing"

	"github.com/zyedidia/generic/mapset"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		correct, wrong []rune
		want           string
	}{
		{
			name:   "fresh game",
			secret: "hello world",
			want: "Mystery:  _ _ _ _ _   _ _ _ _ _\n" +
				"Guessed letters: (none yet)\n" +
				"Wrong guesses (0/6): (none)\n",
		},
		{
			name:    "mixed guesses are sorted",
			secret:  "hello world",
			correct: []rune{'o', 'e'},
			wrong:   []rune{'z', 'x'},
			want: "Mystery:  _ e _ _ o   _ o _ _ _\n" +
				"Guessed letters: e, o, x, z\n" +
				"Wrong guesses (2/6): x, z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.secret, runeSet(tt.correct...), runeSet(tt.wrong...), WrongLimit)
			if got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSpaced(t *testing.T) {
	if got := Spaced("ab c"); got != "a b   c" {
		t.Errorf("Spaced = %q", got)
	}
	if got := Spaced(""); got != "" {
		t.Errorf("Spaced(\"\") = %q", got)
	}
}

func runeSet(rs ...rune) mapset.Set[rune] {
	s := mapset.New[rune]()
	for _, r := range rs {
		s.Put(r)
	}
	return s
}
