package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil, "keyword"))

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "thesaurus_keyword_alt_label_key"}
	err := mapWriteError(unique, "keyword")
	assert.ErrorIs(t, err, thesaurus.ErrDuplicate)
	assert.Contains(t, err.Error(), "thesaurus_keyword_alt_label_key")

	foreignKey := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, mapWriteError(foreignKey, "keyword label"), thesaurus.ErrDuplicate)

	undefinedTable := &pgconn.PgError{Code: "42P01"}
	err = mapWriteError(undefinedTable, "thesaurus")
	assert.NotErrorIs(t, err, thesaurus.ErrDuplicate)
	assert.ErrorIs(t, err, undefinedTable)

	other := errors.New("conn closed")
	assert.ErrorIs(t, mapWriteError(other, "thesaurus"), other)
}
