package conjugation

import (
	"cmp"
	"slices"
)

type Option func(*Aggregator)

func WithPolicy(p Policy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

func WithName(name string) Option {
	return func(a *Aggregator) {
		a.name = name
	}
}

// Aggregator turns the flat list of forms returned by a store into a Verb.
// It holds no state between calls and never fails.
type Aggregator struct {
	policy Policy
	name   string
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{policy: PolicyFirstWins}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate is a shorthand for NewAggregator(opts...).Aggregate(forms).
func Aggregate(forms []Form, opts ...Option) Verb {
	return NewAggregator(opts...).Aggregate(forms)
}

// Aggregate groups forms by mood and tense, keeps one form per person and sorts
// moods and tenses into canonical order. Unknown names keep their first-seen order.
func (a *Aggregator) Aggregate(forms []Form) Verb {
	byMood := newOrderedGroups[string, Form]()
	for _, f := range forms {
		byMood.add(f.Mood, f)
	}

	result := Verb{Name: a.name, Moods: make([]Mood, 0, byMood.len())}
	for moodName, moodForms := range byMood.each() {
		tenses := newOrderedGroups[string, Form]()
		for _, f := range moodForms {
			tenses.add(f.Tense, f)
		}

		mood := Mood{Name: moodName, Tenses: make([]Tense, 0, tenses.len())}
		for tenseName, tenseForms := range tenses.each() {
			mood.Tenses = append(mood.Tenses, Tense{
				Name:  tenseName,
				Forms: dedupe(tenseForms, a.policy),
			})
		}

		slices.SortStableFunc(mood.Tenses, func(x, y Tense) int {
			return cmp.Compare(TenseRank(x.Name), TenseRank(y.Name))
		})
		for i := range mood.Tenses {
			mood.Tenses[i].Index = i
		}

		result.Moods = append(result.Moods, mood)
	}

	slices.SortStableFunc(result.Moods, func(x, y Mood) int {
		return cmp.Compare(MoodRank(x.Name), MoodRank(y.Name))
	})
	for i := range result.Moods {
		result.Moods[i].Index = i
	}

	return result
}
