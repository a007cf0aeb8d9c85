package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document accepted by the import command:
//
//	verbs:
//	  - infinitive: aller
//	    moods:
//	      - name: Indicatif
//	        tenses:
//	          - name: Présent
//	            forms:
//	              - {person: 0, form: "je vais"}
//	              - {person: 1, form: "tu vas"}
type Fixture struct {
	Verbs []FixtureVerb `yaml:"verbs"`
}

type FixtureVerb struct {
	Infinitive string        `yaml:"infinitive"`
	Moods      []FixtureMood `yaml:"moods"`
}

type FixtureMood struct {
	Name   string         `yaml:"name"`
	Tenses []FixtureTense `yaml:"tenses"`
}

type FixtureTense struct {
	Name  string        `yaml:"name"`
	Forms []FixtureForm `yaml:"forms"`
}

type FixtureForm struct {
	Person int    `yaml:"person"`
	Gender string `yaml:"gender,omitempty"`
	Form   string `yaml:"form"`
}

func ReadFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, nil
		}
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}

	return f, nil
}

// Requests flattens the fixture into import requests, keeping document order.
func (f Fixture) Requests() []ImportVerbRequest {
	reqs := make([]ImportVerbRequest, 0, len(f.Verbs))
	for _, v := range f.Verbs {
		r := ImportVerbRequest{Infinitive: v.Infinitive}
		for _, m := range v.Moods {
			for _, t := range m.Tenses {
				for _, ff := range t.Forms {
					r.Forms = append(r.Forms, conjugation.Form{
						Person: conjugation.Person(ff.Person),
						Mood:   m.Name,
						Tense:  t.Name,
						Text:   ff.Form,
						Gender: conjugation.ParseGender(ff.Gender),
					})
				}
			}
		}
		reqs = append(reqs, r)
	}

	return reqs
}
