package announcement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluraliseEmpty(t *testing.T) {
	assert.Nil(t, Pluralise(nil, PluraliseOptions{}))
}

func TestPluraliseSingleItem(t *testing.T) {
	tokens := Pluralise([]string{"BTN"}, PluraliseOptions{
		Prefix:           "station.m.",
		FinalPrefix:      "station.e.",
		FirstItemDelayMs: 400,
	})

	assert.Equal(t, []Token{{Clip: "station.e.BTN", DelayMs: 400}}, tokens)
}

func TestPluraliseTwoItems(t *testing.T) {
	tokens := Pluralise([]string{"CLJ", "BTN"}, PluraliseOptions{
		Prefix:           "station.m.",
		FinalPrefix:      "station.e.",
		BeforeAndDelayMs: 100,
		AfterAndDelayMs:  100,
	})

	assert.Equal(t, []Token{
		{Clip: "station.m.CLJ"},
		{Clip: "m.and", DelayMs: 100},
		{Clip: "station.e.BTN", DelayMs: 100},
	}, tokens)
}

func TestPluraliseManyItems(t *testing.T) {
	tokens := Pluralise([]string{"a", "b", "c", "d"}, PluraliseOptions{
		BeforeItemDelayMs: 320,
	})

	assert.Equal(t, []string{"a", "b", "c", "m.and", "d"}, Clips(tokens))
	assert.Equal(t, 320, tokens[1].DelayMs)
	assert.Equal(t, 320, tokens[2].DelayMs)
}

func TestPluraliseCustomConjunction(t *testing.T) {
	tokens := Pluralise([]string{"RYE", "APD"}, PluraliseOptions{AndClip: "m.or-2"})

	assert.Equal(t, []string{"RYE", "m.or-2", "APD"}, Clips(tokens))
}
