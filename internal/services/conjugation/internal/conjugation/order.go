package conjugation

import "slices"

var (
	moodOrder = []string{"Indicatif", "Conditionnel", "Subjonctif", "Impératif", "Participe"}

	tenseOrder = []string{
		"Passé composé",
		"Imparfait",
		"Plus-que-parfait",
		"Passé simple",
		"Passé antérieur",
		"Futur antérieur",
		"Présent",
		"Futur simple",
		"Passé",
	}
)

const (
	unknownMoodRank  = 5
	unknownTenseRank = 10
)

// MoodRank returns the display position of a mood; unknown names rank after all known ones.
func MoodRank(name string) int {
	return rank(moodOrder, name, unknownMoodRank)
}

// TenseRank returns the display position of a tense; unknown names rank after all known ones.
func TenseRank(name string) int {
	return rank(tenseOrder, name, unknownTenseRank)
}

func rank(order []string, name string, unknown int) int {
	if i := slices.Index(order, name); i >= 0 {
		return i
	}
	return unknown
}
