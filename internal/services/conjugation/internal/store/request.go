package store

import "github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"

type Verb struct {
	ID         VerbID
	Infinitive string
}

type ListVerbsRequest struct {
	Prefix string
	Limit  int
}

type InsertVerbRequest struct {
	Infinitive string
}

type InsertFormsRequest struct {
	VerbID VerbID
	Forms  []conjugation.Form
}

type DeleteVerbRequest struct {
	ID VerbID
}
