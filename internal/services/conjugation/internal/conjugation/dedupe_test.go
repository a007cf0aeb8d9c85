package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(forms []Form) []string {
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		out = append(out, f.Text)
	}
	return out
}

func TestDedupe_FirstWins(t *testing.T) {
	forms := []Form{
		{Person: ThirdSingular, Text: "est allée", Gender: Feminine},
		{Person: FirstSingular, Text: "suis allé", Gender: Masculine},
		{Person: ThirdSingular, Text: "est allé", Gender: Masculine},
		{Person: FirstSingular, Text: "suis allée", Gender: Feminine},
	}

	got := dedupe(forms, PolicyFirstWins)

	require.Len(t, got, 2)
	assert.Equal(t, FirstSingular, got[0].Person)
	assert.Equal(t, ThirdSingular, got[1].Person)
	assert.Equal(t, []string{"suis allé", "est allé"}, texts(got), "feminine first record still wins, then gets normalized")
	assert.Equal(t, Feminine, got[1].Gender)
}

func TestDedupe_PreferMasculine(t *testing.T) {
	forms := []Form{
		{Person: ThirdSingular, Text: "est partie ", Gender: Feminine},
		{Person: ThirdSingular, Text: "est parti", Gender: Masculine},
		{Person: ThirdSingular, Text: "est partiX", Gender: GenderUnspecified},
		{Person: FirstPlural, Text: "sommes parties", Gender: Feminine},
	}

	got := dedupe(forms, PolicyPreferMasculine)

	require.Len(t, got, 2)
	assert.Equal(t, "est parti", got[0].Text)
	assert.Equal(t, Masculine, got[0].Gender)
	assert.Equal(t, "sommes parties", got[1].Text, "falls back to the feminine record")
}

func TestDedupe_SkipsInvalidPerson(t *testing.T) {
	forms := []Form{
		{Person: -1, Text: "bad"},
		{Person: 6, Text: "bad"},
		{Person: SecondPlural, Text: "allez"},
	}

	got := dedupe(forms, PolicyFirstWins)

	require.Len(t, got, 1)
	assert.Equal(t, SecondPlural, got[0].Person)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, dedupe(nil, PolicyFirstWins))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFirstWins, p)

	p, err = ParsePolicy("prefer-masculine")
	require.NoError(t, err)
	assert.Equal(t, PolicyPreferMasculine, p)
	assert.Equal(t, "prefer-masculine", p.String())

	_, err = ParsePolicy("random")
	assert.Error(t, err)
}
