package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
)

const defaultListLimit = 50

// dbtx is the subset of *sql.DB and *sql.Tx the store needs.
type dbtx interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// dialect hides the differences between the SQL backends.
type dialect struct {
	name string
	// positional rewrites "?" placeholders when the driver needs numbered ones.
	positional bool
	isUnique   func(error) bool
	isForeign  func(error) bool
}

// SQLStore implements DataStore on top of database/sql.
type SQLStore struct {
	db *sql.DB
	q  dbtx
	d  dialect
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, q: db, d: d}
}

func (s *SQLStore) Dialect() string {
	return s.d.name
}

func (s *SQLStore) rebind(query string) string {
	if !s.d.positional {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *SQLStore) FindVerbID(ctx context.Context, name string) (VerbID, error) {
	row := s.q.QueryRowContext(ctx, s.rebind("SELECT id FROM verbs WHERE lookup_key = ?"), LookupKey(name))

	var id VerbID
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("find verb id: %w", err)
	}

	return id, nil
}

func (s *SQLStore) FetchForms(ctx context.Context, id VerbID) ([]conjugation.Form, error) {
	rows, err := s.q.QueryContext(ctx, s.rebind(
		`SELECT person, mood, tense, form, gender
		 FROM forms
		 WHERE verb_id = ?
		 ORDER BY position`), id)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	forms := []conjugation.Form{}
	for rows.Next() {
		var (
			f      conjugation.Form
			person int
			gender string
		)
		if err := rows.Scan(&person, &f.Mood, &f.Tense, &f.Text, &gender); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}

		f.Person = conjugation.Person(person)
		f.Gender = conjugation.ParseGender(gender)
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}

	return forms, nil
}

func (s *SQLStore) ListVerbs(ctx context.Context, r ListVerbsRequest) ([]Verb, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.q.QueryContext(ctx, s.rebind(
		`SELECT id, infinitive
		 FROM verbs
		 WHERE lookup_key LIKE ? ESCAPE '\'
		 ORDER BY lookup_key
		 LIMIT ?`), escapeLike(LookupKey(r.Prefix))+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query verbs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	verbs := []Verb{}
	for rows.Next() {
		var v Verb
		if err := rows.Scan(&v.ID, &v.Infinitive); err != nil {
			return nil, fmt.Errorf("scan verb: %w", err)
		}
		verbs = append(verbs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verbs: %w", err)
	}

	return verbs, nil
}

// InsertVerb returns ErrExists when a verb with the same lookup key is stored.
// The conflict is resolved in SQL, so an open transaction stays usable afterwards.
func (s *SQLStore) InsertVerb(ctx context.Context, r InsertVerbRequest) (VerbID, error) {
	row := s.q.QueryRowContext(ctx, s.rebind(
		`INSERT INTO verbs (infinitive, lookup_key) VALUES (?, ?)
		 ON CONFLICT (lookup_key) DO NOTHING
		 RETURNING id`),
		strings.TrimSpace(r.Infinitive), LookupKey(r.Infinitive))

	var id VerbID
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || s.d.isUnique(err) {
			return 0, ErrExists
		}
		return 0, fmt.Errorf("insert verb: %w", err)
	}

	return id, nil
}

// InsertForms appends forms to a verb, keeping their order after any forms already stored.
func (s *SQLStore) InsertForms(ctx context.Context, r InsertFormsRequest) error {
	if len(r.Forms) == 0 {
		return nil
	}

	row := s.q.QueryRowContext(ctx, s.rebind("SELECT COALESCE(MAX(position), -1) + 1 FROM forms WHERE verb_id = ?"), r.VerbID)
	var next int
	if err := row.Scan(&next); err != nil {
		return fmt.Errorf("next form position: %w", err)
	}

	query := s.rebind(
		`INSERT INTO forms (verb_id, position, mood, tense, person, gender, form)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, f := range r.Forms {
		_, err := s.q.ExecContext(ctx, query, r.VerbID, next+i, f.Mood, f.Tense, int(f.Person), f.Gender.String(), f.Text)
		if err != nil {
			if s.d.isForeign(err) {
				return ErrNotFound
			}
			return fmt.Errorf("insert form %d: %w", i, err)
		}
	}

	return nil
}

func (s *SQLStore) DeleteVerb(ctx context.Context, r DeleteVerbRequest) error {
	res, err := s.q.ExecContext(ctx, s.rebind("DELETE FROM verbs WHERE id = ?"), r.ID)
	if err != nil {
		return fmt.Errorf("delete verb: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// WithinTx runs fn in a transaction, committing when fn returns nil. Nested
// calls reuse the outer transaction.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(tx DataStore) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&SQLStore{q: tx, d: s.d}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Ping reports whether the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
