//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/store"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/testhelpers"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func setupRepository(t *testing.T) (*testhelpers.TestDB, *store.ThesaurusRepository) {
	t.Helper()
	testDB := testhelpers.GetTestDB(t)
	testDB.Truncate(t)
	return testDB, store.NewThesaurusRepository(testDB.DB)
}

func newThesaurus(identifier string) *thesaurus.Thesaurus {
	return &thesaurus.Thesaurus{
		ID:          uuid.New(),
		Identifier:  identifier,
		Title:       "Test thesaurus",
		Description: "Test thesaurus",
		About:       "http://ex.org/" + identifier,
		Date:        "2024-01-01",
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	assert.NoError(t, store.RunMigrations(testDB.ConnStr, zap.NewNop()))
}

func TestInTxCommitsAndIsolates(t *testing.T) {
	_, repo := setupRepository(t)
	ctx := context.Background()
	th := newThesaurus("isolation")
	keyword := &thesaurus.Keyword{ID: uuid.New(), ThesaurusID: th.ID, About: "http://ex.org/c1", AltLabel: "water"}

	err := repo.InTx(ctx, func(s thesaurus.Store) error {
		require.NoError(t, s.SaveThesaurus(ctx, th))
		require.NoError(t, s.Isolate(ctx, func(s thesaurus.Store) error {
			require.NoError(t, s.SaveKeyword(ctx, keyword))
			require.NoError(t, s.SaveKeywordLabel(ctx, &thesaurus.KeywordLabel{ID: uuid.New(), KeywordID: keyword.ID, Lang: "en", Label: "water"}))

			err := s.Isolate(ctx, func(s thesaurus.Store) error {
				return s.SaveKeywordLabel(ctx, &thesaurus.KeywordLabel{ID: uuid.New(), KeywordID: keyword.ID, Lang: "en", Label: "H2O"})
			})
			assert.ErrorIs(t, err, thesaurus.ErrDuplicate)
			return s.SaveKeywordLabel(ctx, &thesaurus.KeywordLabel{ID: uuid.New(), KeywordID: keyword.ID, Lang: "de", Label: "Wasser"})
		}))

		err := s.Isolate(ctx, func(s thesaurus.Store) error {
			return s.SaveKeyword(ctx, &thesaurus.Keyword{ID: uuid.New(), ThesaurusID: th.ID, About: "http://ex.org/c2", AltLabel: "water"})
		})
		assert.ErrorIs(t, err, thesaurus.ErrDuplicate)
		return nil
	})
	require.NoError(t, err)

	keywords, err := repo.Keywords(ctx, "isolation")
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "http://ex.org/c1", keywords[0].About)
	require.Len(t, keywords[0].Labels, 2)
	assert.Equal(t, "de", keywords[0].Labels[0].Lang)
	assert.Equal(t, "en", keywords[0].Labels[1].Lang)
	assert.Equal(t, "water", keywords[0].Labels[1].Label)
}

func TestInTxRollsBackOnError(t *testing.T) {
	_, repo := setupRepository(t)
	ctx := context.Background()
	failure := errors.New("abort")

	err := repo.InTx(ctx, func(s thesaurus.Store) error {
		require.NoError(t, s.SaveThesaurus(ctx, newThesaurus("rolled-back")))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	exists, err := repo.ThesaurusExists(ctx, "rolled-back")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDuplicateIdentifier(t *testing.T) {
	_, repo := setupRepository(t)
	ctx := context.Background()
	save := func() error {
		return repo.InTx(ctx, func(s thesaurus.Store) error {
			return s.SaveThesaurus(ctx, newThesaurus("gemet"))
		})
	}

	require.NoError(t, save())
	assert.ErrorIs(t, save(), thesaurus.ErrDuplicate)
}

func TestReadThesauri(t *testing.T) {
	_, repo := setupRepository(t)
	ctx := context.Background()
	gemet, agrovoc := newThesaurus("gemet"), newThesaurus("agrovoc")
	soil := &thesaurus.Keyword{ID: uuid.New(), ThesaurusID: gemet.ID, About: "http://ex.org/soil", AltLabel: "soil"}
	require.NoError(t, repo.InTx(ctx, func(s thesaurus.Store) error {
		for _, th := range []*thesaurus.Thesaurus{gemet, agrovoc} {
			if err := s.SaveThesaurus(ctx, th); err != nil {
				return err
			}
		}
		if err := s.SaveKeyword(ctx, soil); err != nil {
			return err
		}
		return s.SaveKeyword(ctx, &thesaurus.Keyword{ID: uuid.New(), ThesaurusID: agrovoc.ID, About: "http://ex.org/air", AltLabel: "air"})
	}))

	all, err := repo.ListThesauri(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "agrovoc", all[0].Identifier)

	got, err := repo.GetThesaurus(ctx, "gemet")
	require.NoError(t, err)
	assert.Equal(t, gemet, got)

	_, err = repo.GetThesaurus(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.Keywords(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	keywords, err := repo.KeywordsByAbout(ctx, []string{"http://ex.org/soil", "http://ex.org/unknown"})
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "soil", keywords[0].AltLabel)
	assert.Empty(t, keywords[0].Labels)
}

func TestLoadIntoPostgres(t *testing.T) {
	_, repo := setupRepository(t)
	ctx := context.Background()
	loader := thesaurus.NewLoader(thesaurus.Gemet(), repo, nil, nil, zap.NewNop())

	summary, err := loader.LoadFile(ctx, "../thesaurus/testdata/gemet.nt", "", thesaurus.Options{Name: "gemet", DefaultLang: "en"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Keywords)

	keywords, err := repo.Keywords(ctx, "gemet")
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "Soil", keywords[0].AltLabel)
	assert.Equal(t, "Water", keywords[1].AltLabel)
	assert.Len(t, keywords[1].Labels, 3)

	_, err = loader.LoadFile(ctx, "../thesaurus/testdata/gemet.nt", "", thesaurus.Options{Name: "gemet", DefaultLang: "en"})
	assert.ErrorIs(t, err, thesaurus.ErrDuplicate)
}
