package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonLabel(t *testing.T) {
	assert.Equal(t, []string{"je", "tu", "il/elle", "nous", "vous", "ils/elles"}, PersonLabels())
	assert.Equal(t, "nous", FirstPlural.Label())
	assert.Equal(t, "", Person(6).Label())
	assert.False(t, Person(-1).Valid())
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, Masculine, ParseGender("masculine"))
	assert.Equal(t, Masculine, ParseGender(" M "))
	assert.Equal(t, Feminine, ParseGender("féminin"))
	assert.Equal(t, GenderUnspecified, ParseGender(""))
	assert.Equal(t, GenderUnspecified, ParseGender("neuter"))
	assert.Equal(t, "feminine", Feminine.String())
	assert.Equal(t, "", GenderUnspecified.String())
}

func TestVerbLookupHelpers(t *testing.T) {
	v := Aggregate([]Form{
		{Person: FirstSingular, Mood: "Indicatif", Tense: "Présent", Text: "vais"},
		{Person: SecondSingular, Mood: "Indicatif", Tense: "Présent", Text: "vas"},
	})

	mood, ok := v.Mood("Indicatif")
	assert.True(t, ok)

	tense, ok := mood.Tense("Présent")
	assert.True(t, ok)

	f, ok := tense.Form(SecondSingular)
	assert.True(t, ok)
	assert.Equal(t, "vas", f.Text)

	_, ok = tense.Form(ThirdPlural)
	assert.False(t, ok)
	_, ok = mood.Tense("Imparfait")
	assert.False(t, ok)
	_, ok = v.Mood("Subjonctif")
	assert.False(t, ok)
}
