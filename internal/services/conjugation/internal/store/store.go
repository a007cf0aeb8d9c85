package store

import (
	"context"
	"errors"
	"strings"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// VerbID identifies a verb in the form store.
type VerbID int64

// FormReader is the read side used by lookups.
type FormReader interface {
	// FindVerbID resolves an infinitive to its id, returning ErrNotFound when absent.
	FindVerbID(ctx context.Context, name string) (VerbID, error)
	// FetchForms returns every stored form of a verb in insertion order.
	FetchForms(ctx context.Context, id VerbID) ([]conjugation.Form, error)
}

type DataStore interface {
	FormReader
	ListVerbs(ctx context.Context, r ListVerbsRequest) ([]Verb, error)
	InsertVerb(ctx context.Context, r InsertVerbRequest) (VerbID, error)
	InsertForms(ctx context.Context, r InsertFormsRequest) error
	DeleteVerb(ctx context.Context, r DeleteVerbRequest) error
	WithinTx(ctx context.Context, fn func(tx DataStore) error) error
}

// LookupKey is the case-insensitive key verbs are matched by.
func LookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
