package conjugation

import "strings"

// Person identifies one of the six grammatical subjects, 0 (je) to 5 (ils/elles).
type Person int

const (
	FirstSingular Person = iota
	SecondSingular
	ThirdSingular
	FirstPlural
	SecondPlural
	ThirdPlural
)

const PersonCount = 6

var personLabels = [PersonCount]string{"je", "tu", "il/elle", "nous", "vous", "ils/elles"}

func (p Person) Valid() bool {
	return p >= FirstSingular && p <= ThirdPlural
}

// Label returns the display pronoun for p, or "" when p is out of range.
func (p Person) Label() string {
	if !p.Valid() {
		return ""
	}
	return personLabels[p]
}

// PersonLabels returns the display pronouns indexed by Person.
func PersonLabels() []string {
	return personLabels[:]
}

// Gender is the optional agreement marker of a form. The zero value means the
// store did not provide one.
type Gender int

const (
	GenderUnspecified Gender = iota
	Masculine
	Feminine
)

func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masculine", "masculin", "m":
		return Masculine
	case "feminine", "féminin", "feminin", "f":
		return Feminine
	default:
		return GenderUnspecified
	}
}

func (g Gender) String() string {
	switch g {
	case Masculine:
		return "masculine"
	case Feminine:
		return "feminine"
	default:
		return ""
	}
}

// Form is a single inflected form as stored: one record per mood, tense, person and gender.
// Mood and tense are free text and need not be canonical names.
type Form struct {
	Person Person
	Mood   string
	Tense  string
	Text   string
	Gender Gender
}

type Tense struct {
	Index int
	Name  string
	// Forms holds at most one form per person, ordered by person.
	Forms []Form
}

// Form returns the form for p.
func (t Tense) Form(p Person) (Form, bool) {
	for _, f := range t.Forms {
		if f.Person == p {
			return f, true
		}
	}
	return Form{}, false
}

type Mood struct {
	Index  int
	Name   string
	Tenses []Tense
}

func (m Mood) Tense(name string) (Tense, bool) {
	for _, t := range m.Tenses {
		if t.Name == name {
			return t, true
		}
	}
	return Tense{}, false
}

// Verb is the display-ready conjugation table of one verb. A Verb is built once
// per lookup and never modified afterwards, so it can be shared freely.
type Verb struct {
	Name  string
	Moods []Mood
}

func (v Verb) Mood(name string) (Mood, bool) {
	for _, m := range v.Moods {
		if m.Name == name {
			return m, true
		}
	}
	return Mood{}, false
}
