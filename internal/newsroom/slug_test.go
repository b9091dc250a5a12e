package newsroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "plain words", title: "Arsenal beat Chelsea", want: "arsenal-beat-chelsea"},
		{name: "diacritics folded", title: "Mbappé Joins Real Madrid!", want: "mbappe-joins-real-madrid"},
		{name: "non decomposing letters", title: "Ødegaard and Müller in Straße", want: "odegaard-and-muller-in-strasse"},
		{name: "punctuation dropped", title: "Goal!", want: "goal"},
		{name: "hyphenated name", title: "Man-Utd beat City", want: "man-utd-beat-city"},
		{name: "score", title: "PSG 2-1 Lyon", want: "psg-2-1-lyon"},
		{name: "score first", title: "3-0 win", want: "3-0-win"},
		{name: "slash separates words", title: "Real Madrid/Barcelona", want: "real-madrid-barcelona"},
		{name: "punctuation between words", title: "Goal!Goal", want: "goal-goal"},
		{name: "mixed separator run", title: "Derby -- (Live!) -- Updates", want: "derby-live-updates"},
		{name: "whitespace runs collapse", title: "  Title \t race\n heats up  ", want: "title-race-heats-up"},
		{name: "spaced hyphen", title: "Man - Utd", want: "man-utd"},
		{name: "nothing survives", title: "!!! ???", want: ""},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}
