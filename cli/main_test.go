package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SOLR_ENDPOINT", "")
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "thesaurus", "testdata", name)
}

func TestLoadRequiresFileAndName(t *testing.T) {
	_, err := execute(t, "gemet", "--name", "gemet")
	assert.ErrorIs(t, err, thesaurus.ErrMissingFile)

	_, err = execute(t, "agrovoc", "--file", fixture("agrovoc.nt"))
	assert.ErrorIs(t, err, thesaurus.ErrMissingName)
}

func TestGemetDryRun(t *testing.T) {
	out, err := execute(t, "load", "--file", fixture("gemet.nt"), "--name", "gemet", "-d")
	require.NoError(t, err)

	var summary thesaurus.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.True(t, summary.DryRun)
	assert.Equal(t, "gemet", summary.Identifier)
	assert.Equal(t, 2, summary.Keywords)
}

func TestAgrovocDryRun(t *testing.T) {
	out, err := execute(t, "agrovoc", "--file", fixture("agrovoc.nt"), "--name", "agrovoc",
		"--dry-run", "--force-lower-case", "--defaultlang", "de", "--description", "FAO thesaurus")
	require.NoError(t, err)

	var summary thesaurus.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "AGROVOC", summary.Title)
	assert.Equal(t, 1, summary.Keywords)
	assert.Equal(t, 1, summary.KeywordsSkipped)
}

func TestLoadWithoutDatabase(t *testing.T) {
	_, err := execute(t, "gemet", "--file", fixture("gemet.nt"), "--name", "gemet")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, "gemet", "--file", fixture("gemet.nt"), "--name", "gemet", "-d", "--format", "csv")
	assert.Error(t, err)
}

func TestReindexRequiresSolr(t *testing.T) {
	_, err := execute(t, "reindex", "gemet")
	assert.ErrorContains(t, err, "SOLR_ENDPOINT")
}
