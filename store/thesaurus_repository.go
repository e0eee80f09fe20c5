package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

var ErrNotFound = errors.New("thesaurus not found")

// integrityViolationClass is the SQLSTATE class of unique (23505), foreign key (23503)
// and check (23514) violations.
const integrityViolationClass = "23"

// ThesaurusRepository persists thesauri in PostgreSQL. It is the thesaurus.Sink of
// imports and serves the read side of the API.
type ThesaurusRepository struct {
	db *DB
}

func NewThesaurusRepository(db *DB) *ThesaurusRepository {
	return &ThesaurusRepository{db: db}
}

// InTx runs fn in one transaction which is committed when fn returns nil.
func (r *ThesaurusRepository) InTx(ctx context.Context, fn func(thesaurus.Store) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// txStore saves records in a transaction. Isolate maps to a savepoint.
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) SaveThesaurus(ctx context.Context, t *thesaurus.Thesaurus) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO thesaurus (id, identifier, title, description, about, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Identifier, t.Title, t.Description, t.About, t.Date)
	return mapWriteError(err, "thesaurus")
}

func (s *txStore) SaveKeyword(ctx context.Context, k *thesaurus.Keyword) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO thesaurus_keyword (id, thesaurus_id, about, alt_label)
		VALUES ($1, $2, $3, $4)`,
		k.ID, k.ThesaurusID, k.About, k.AltLabel)
	return mapWriteError(err, "keyword")
}

func (s *txStore) SaveKeywordLabel(ctx context.Context, l *thesaurus.KeywordLabel) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO thesaurus_keyword_label (id, keyword_id, lang, label)
		VALUES ($1, $2, $3, $4)`,
		l.ID, l.KeywordID, l.Lang, l.Label)
	return mapWriteError(err, "keyword label")
}

func (s *txStore) Isolate(ctx context.Context, fn func(thesaurus.Store) error) error {
	savepoint, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}
	if err := fn(&txStore{tx: savepoint}); err != nil {
		if rollbackErr := savepoint.Rollback(ctx); rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back savepoint: %w", rollbackErr))
		}
		return err
	}
	if err := savepoint.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// mapWriteError turns integrity violations into thesaurus.ErrDuplicate.
func mapWriteError(err error, record string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%w: %s violates %s (%s)", thesaurus.ErrDuplicate, record, pgErr.ConstraintName, pgErr.Code)
	}
	return fmt.Errorf("failed to save %s: %w", record, err)
}

const thesaurusColumns = `id, identifier, title, description, about, date`

func scanThesaurus(row pgx.Row) (*thesaurus.Thesaurus, error) {
	var t thesaurus.Thesaurus
	if err := row.Scan(&t.ID, &t.Identifier, &t.Title, &t.Description, &t.About, &t.Date); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListThesauri returns all thesauri ordered by identifier.
func (r *ThesaurusRepository) ListThesauri(ctx context.Context) ([]thesaurus.Thesaurus, error) {
	rows, err := r.db.Query(ctx, `SELECT `+thesaurusColumns+` FROM thesaurus ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("failed to list thesauri: %w", err)
	}
	defer rows.Close()

	result := []thesaurus.Thesaurus{}
	for rows.Next() {
		t, err := scanThesaurus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thesaurus: %w", err)
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

// GetThesaurus returns the thesaurus with the given identifier or ErrNotFound.
func (r *ThesaurusRepository) GetThesaurus(ctx context.Context, identifier string) (*thesaurus.Thesaurus, error) {
	t, err := scanThesaurus(r.db.QueryRow(ctx,
		`SELECT `+thesaurusColumns+` FROM thesaurus WHERE identifier = $1`, identifier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thesaurus %s: %w", identifier, err)
	}
	return t, nil
}

// ThesaurusExists reports whether a thesaurus with the identifier was loaded.
func (r *ThesaurusRepository) ThesaurusExists(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM thesaurus WHERE identifier = $1)`, identifier).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check thesaurus %s: %w", identifier, err)
	}
	return exists, nil
}

// Keywords returns the keywords of a thesaurus with their labels, ordered by alt_label.
func (r *ThesaurusRepository) Keywords(ctx context.Context, identifier string) ([]thesaurus.LoadedKeyword, error) {
	t, err := r.GetThesaurus(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return r.queryKeywords(ctx, `k.thesaurus_id = $1`, t.ID)
}

// KeywordsByAbout returns the keywords of all thesauri with one of the given abouts.
func (r *ThesaurusRepository) KeywordsByAbout(ctx context.Context, abouts []string) ([]thesaurus.LoadedKeyword, error) {
	if len(abouts) == 0 {
		return []thesaurus.LoadedKeyword{}, nil
	}
	return r.queryKeywords(ctx, `k.about = ANY($1)`, abouts)
}

func (r *ThesaurusRepository) queryKeywords(ctx context.Context, condition string, arg any) ([]thesaurus.LoadedKeyword, error) {
	rows, err := r.db.Query(ctx, `
		SELECT k.id, k.thesaurus_id, k.about, k.alt_label, l.id, l.lang, l.label
		FROM thesaurus_keyword k
		LEFT JOIN thesaurus_keyword_label l ON l.keyword_id = k.id
		WHERE `+condition+`
		ORDER BY k.alt_label, k.id, l.lang`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	result := []thesaurus.LoadedKeyword{}
	for rows.Next() {
		var keyword thesaurus.Keyword
		var labelID *uuid.UUID
		var lang, label *string
		if err := rows.Scan(&keyword.ID, &keyword.ThesaurusID, &keyword.About, &keyword.AltLabel, &labelID, &lang, &label); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		if len(result) == 0 || result[len(result)-1].ID != keyword.ID {
			result = append(result, thesaurus.LoadedKeyword{Keyword: keyword, Labels: []thesaurus.KeywordLabel{}})
		}
		if labelID != nil {
			current := &result[len(result)-1]
			current.Labels = append(current.Labels, thesaurus.KeywordLabel{
				ID:        *labelID,
				KeywordID: keyword.ID,
				Lang:      *lang,
				Label:     *label,
			})
		}
	}
	return result, rows.Err()
}
