package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/serr"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/store"
)

// Catalog maintains the verbs and forms the lookups read from.
type Catalog struct {
	store store.DataStore
}

func NewCatalog(st store.DataStore) *Catalog {
	return &Catalog{store: st}
}

type ImportVerbRequest struct {
	Infinitive string
	Forms      []conjugation.Form
}

// ImportVerb stores a verb together with its forms in one transaction. Forms
// keep the order they are given in. It returns a ServiceError with status 409
// when the verb already exists and 400 when the request is malformed.
func (c *Catalog) ImportVerb(ctx context.Context, r ImportVerbRequest) (store.VerbID, error) {
	var id store.VerbID
	err := c.store.WithinTx(ctx, func(tx store.DataStore) error {
		var err error
		id, err = importVerb(ctx, tx, r)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ImportOptions controls ImportAll.
type ImportOptions struct {
	SkipExisting bool
}

type ImportResult struct {
	Imported []string
	Skipped  []string
}

// ImportAll imports every verb in a single transaction; any failure rolls all of them back.
func (c *Catalog) ImportAll(ctx context.Context, reqs []ImportVerbRequest, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	err := c.store.WithinTx(ctx, func(tx store.DataStore) error {
		res = ImportResult{}
		for _, r := range reqs {
			_, err := importVerb(ctx, tx, r)
			if err != nil {
				if opts.SkipExisting && errors.Is(err, store.ErrExists) {
					res.Skipped = append(res.Skipped, r.Infinitive)
					continue
				}
				return err
			}
			res.Imported = append(res.Imported, r.Infinitive)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	return res, nil
}

func importVerb(ctx context.Context, tx store.DataStore, r ImportVerbRequest) (store.VerbID, error) {
	if err := validate(r); err != nil {
		return 0, err
	}

	id, err := tx.InsertVerb(ctx, store.InsertVerbRequest{Infinitive: r.Infinitive})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return 0, serr.NewServiceError(err, http.StatusConflict, "verb '%s' already exists", r.Infinitive).
				With("verb", r.Infinitive)
		}
		return 0, fmt.Errorf("insert verb: %w", err)
	}

	err = tx.InsertForms(ctx, store.InsertFormsRequest{VerbID: id, Forms: r.Forms})
	if err != nil {
		return 0, fmt.Errorf("insert forms: %w", err)
	}

	return id, nil
}

func validate(r ImportVerbRequest) error {
	if strings.TrimSpace(r.Infinitive) == "" {
		return serr.NewServiceError(nil, http.StatusBadRequest, "infinitive is required")
	}

	for i, f := range r.Forms {
		if !f.Person.Valid() {
			return serr.NewServiceError(nil, http.StatusBadRequest, "form %d: invalid person %d", i, int(f.Person)).
				With("verb", r.Infinitive)
		}
		if f.Mood == "" || f.Tense == "" {
			return serr.NewServiceError(nil, http.StatusBadRequest, "form %d: mood and tense are required", i).
				With("verb", r.Infinitive)
		}
	}

	return nil
}

// DeleteVerb removes a verb and its forms. It returns a ServiceError with status 404
// when there is no such verb.
func (c *Catalog) DeleteVerb(ctx context.Context, id store.VerbID) error {
	if err := c.store.DeleteVerb(ctx, store.DeleteVerbRequest{ID: id}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return serr.NewServiceError(err, http.StatusNotFound, "verb not found").
				With("verb_id", strconv.FormatInt(int64(id), 10))
		}
		return fmt.Errorf("delete verb: %w", err)
	}

	return nil
}

func (c *Catalog) ListVerbs(ctx context.Context, prefix string, limit int) ([]store.Verb, error) {
	verbs, err := c.store.ListVerbs(ctx, store.ListVerbsRequest{Prefix: prefix, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list verbs: %w", err)
	}

	return verbs, nil
}
