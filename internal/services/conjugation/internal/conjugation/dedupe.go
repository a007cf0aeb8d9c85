package conjugation

import "fmt"

// Policy decides which record represents a person when several share it.
type Policy int

const (
	// PolicyFirstWins keeps the first record seen for each person, whatever its gender.
	PolicyFirstWins Policy = iota
	// PolicyPreferMasculine keeps the first masculine or unmarked record, falling
	// back to the first record when a person only has feminine ones.
	PolicyPreferMasculine
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "first-wins":
		return PolicyFirstWins, nil
	case "prefer-masculine":
		return PolicyPreferMasculine, nil
	default:
		return PolicyFirstWins, fmt.Errorf("unknown dedup policy %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyPreferMasculine {
		return "prefer-masculine"
	}
	return "first-wins"
}

// dedupe picks one form per person from records that share a mood and tense.
// The result is ordered by person and carries normalized text. Records with an
// out of range person are skipped.
func dedupe(forms []Form, policy Policy) []Form {
	var (
		picked [PersonCount]Form
		found  [PersonCount]bool
		final  [PersonCount]bool
	)

	for _, f := range forms {
		if !f.Person.Valid() || final[f.Person] {
			continue
		}

		preferred := policy == PolicyFirstWins || f.Gender != Feminine
		if !found[f.Person] || preferred {
			picked[f.Person] = f
			found[f.Person] = true
			final[f.Person] = preferred
		}
	}

	result := make([]Form, 0, PersonCount)
	for p := range PersonCount {
		if !found[p] {
			continue
		}

		f := picked[p]
		f.Text = Normalize(f.Text)
		result = append(result, f)
	}

	return result
}
