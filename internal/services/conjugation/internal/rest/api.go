package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/fn"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/httpx"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/middleware"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/serr"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/catalog"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/lookup"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/store"
)

type verbLookup interface {
	LookupVerb(ctx context.Context, name string) (conjugation.Verb, error)
}

type verbCatalog interface {
	ImportVerb(ctx context.Context, r catalog.ImportVerbRequest) (store.VerbID, error)
	DeleteVerb(ctx context.Context, id store.VerbID) error
	ListVerbs(ctx context.Context, prefix string, limit int) ([]store.Verb, error)
}

type API struct {
	lookup  verbLookup
	catalog verbCatalog
	auth    router.Middleware
	rt      *router.Router
}

// NewAPI serves lookups publicly; changes to the catalog require a token signed with authKey.
func NewAPI(l verbLookup, c verbCatalog, authKey []byte) *API {
	api := &API{
		lookup:  l,
		catalog: c,
		auth:    middleware.Auth(authKey),
		rt:      router.New(),
	}

	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.rt.ServeHTTP(w, r)
}

func (api *API) mount() {
	api.rt.HandleFunc("GET /persons", api.handleGetPersons)
	api.rt.HandleFunc("GET /verbs", api.handleListVerbs)
	api.rt.HandleFunc("GET /verbs/{name}", api.handleGetVerb)
	api.rt.Handle("PUT /verbs", api.auth(http.HandlerFunc(api.handleImportVerb)))
	api.rt.Handle("DELETE /verbs/{verb_id}", api.auth(http.HandlerFunc(api.handleDeleteVerb)))
}

type formResponse struct {
	Person int    `json:"person"`
	Label  string `json:"label"`
	Form   string `json:"form"`
	Gender string `json:"gender,omitempty"`
}

type tenseResponse struct {
	Index int            `json:"index"`
	Name  string         `json:"name"`
	Forms []formResponse `json:"forms"`
}

type moodResponse struct {
	Index  int             `json:"index"`
	Name   string          `json:"name"`
	Tenses []tenseResponse `json:"tenses"`
}

type verbResponse struct {
	Verb  string         `json:"verb"`
	Moods []moodResponse `json:"moods"`
}

func (api *API) handleGetVerb(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	verb, err := api.lookup.LookupVerb(r.Context(), name)
	if err != nil {
		var nf *lookup.NotFoundError
		if errors.As(err, &nf) {
			httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusNotFound, "%s", nf.Error()).With("verb", name))
			return
		}

		httpx.HandleErr(w, r, err)
		return
	}

	err = httpx.WriteJSON(w, http.StatusOK, toVerbResponse(verb))
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}

func toVerbResponse(v conjugation.Verb) verbResponse {
	return verbResponse{
		Verb: v.Name,
		Moods: fn.Map(v.Moods, func(m conjugation.Mood) moodResponse {
			return moodResponse{
				Index: m.Index,
				Name:  m.Name,
				Tenses: fn.Map(m.Tenses, func(t conjugation.Tense) tenseResponse {
					return tenseResponse{
						Index: t.Index,
						Name:  t.Name,
						Forms: fn.Map(t.Forms, func(f conjugation.Form) formResponse {
							return formResponse{
								Person: int(f.Person),
								Label:  f.Person.Label(),
								Form:   f.Text,
								Gender: f.Gender.String(),
							}
						}),
					}
				}),
			}
		}),
	}
}

type personResponse struct {
	Person int    `json:"person"`
	Label  string `json:"label"`
}

func (api *API) handleGetPersons(w http.ResponseWriter, r *http.Request) {
	persons := fn.MapIndex(conjugation.PersonLabels(), func(i int, l string) personResponse {
		return personResponse{Person: i, Label: l}
	})

	if err := httpx.WriteJSON(w, http.StatusOK, persons); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}

type verbSummaryResponse struct {
	ID         int64  `json:"id"`
	Infinitive string `json:"infinitive"`
}

func (api *API) handleListVerbs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid limit parameter"))
			return
		}
		limit = n
	}

	verbs, err := api.catalog.ListVerbs(r.Context(), r.URL.Query().Get("prefix"), limit)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	resp := fn.Map(verbs, func(v store.Verb) verbSummaryResponse {
		return verbSummaryResponse{ID: int64(v.ID), Infinitive: v.Infinitive}
	})

	if err := httpx.WriteJSON(w, http.StatusOK, resp); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}

type importFormRequest struct {
	Mood   string `json:"mood"`
	Tense  string `json:"tense"`
	Person int    `json:"person"`
	Gender string `json:"gender"`
	Form   string `json:"form"`
}

type importVerbRequest struct {
	Infinitive string              `json:"infinitive"`
	Forms      []importFormRequest `json:"forms"`
}

type importVerbResponse struct {
	ID int64 `json:"id"`
}

func (api *API) handleImportVerb(w http.ResponseWriter, r *http.Request) {
	var req importVerbRequest
	err := httpx.ReadJSON(r, &req)
	if err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	id, err := api.catalog.ImportVerb(r.Context(), catalog.ImportVerbRequest{
		Infinitive: req.Infinitive,
		Forms: fn.Map(req.Forms, func(f importFormRequest) conjugation.Form {
			return conjugation.Form{
				Person: conjugation.Person(f.Person),
				Mood:   f.Mood,
				Tense:  f.Tense,
				Text:   f.Form,
				Gender: conjugation.ParseGender(f.Gender),
			}
		}),
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	slog.Info("verb imported",
		"verb", req.Infinitive,
		"verb_id", int64(id),
		"forms", len(req.Forms),
		"subject", middleware.SubjectFromContext(r.Context()))

	err = httpx.WriteJSON(w, http.StatusCreated, importVerbResponse{ID: int64(id)})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}

func (api *API) handleDeleteVerb(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("verb_id"), 10, 64)
	if err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid id parameter"))
		return
	}

	if err := api.catalog.DeleteVerb(r.Context(), store.VerbID(id)); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	slog.Info("verb deleted", "verb_id", id, "subject", middleware.SubjectFromContext(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
