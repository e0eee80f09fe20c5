package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/stevenferrer/solr-go"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
)

type document map[string]any

// Index is the Solr collection holding one document per keyword.
type Index struct {
	Endpoint   string
	Collection string
	client     *solr.JSONClient
	httpClient *http.Client
	numShards  int
	logger     *zap.Logger
}

// NewIndex creates a client for the configured collection.
func NewIndex(cfg base.SolrConfig, logger *zap.Logger) *Index {
	return &Index{
		Endpoint:   cfg.Endpoint,
		Collection: cfg.Collection,
		client:     solr.NewJSONClient(cfg.Endpoint),
		httpClient: http.DefaultClient,
		numShards:  1,
		logger:     logger.With(zap.String("collection", cfg.Collection)),
	}
}

// Init creates the collection and its schema if it does not exist yet, or always when
// forceRecreate is set.
func (i *Index) Init(ctx context.Context, forceRecreate bool) error {
	if !forceRecreate {
		exists, err := i.collectionExists(ctx)
		if err != nil {
			return fmt.Errorf("failed checking solr collection: %w", err)
		}
		if exists {
			return nil
		}
	}
	return i.recreateCollection(ctx)
}

// collectionExists determines whether the Solr collection is present.
func (i *Index) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/solr/admin/collections?action=LIST&wt=json", i.Endpoint), nil)
	if err != nil {
		return false, err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected solr status: %s", resp.Status)
	}
	var payload struct {
		Collections []string `json:"collections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, err
	}
	return slices.Contains(payload.Collections, i.Collection), nil
}

// recreateCollection drops and rebuilds the Solr collection and schema.
func (i *Index) recreateCollection(ctx context.Context) error {
	i.logger.Debug("Recreating solr collection", zap.String("endpoint", i.Endpoint))
	if err := i.client.DeleteCollection(ctx, solr.NewCollectionParams().Name(i.Collection)); err != nil {
		i.logger.Warn("Collection couldn't be deleted", zap.Error(err))
	}
	if err := i.client.CreateCollection(ctx, solr.NewCollectionParams().Name(i.Collection).NumShards(i.numShards)); err != nil {
		return fmt.Errorf("failed creating solr collection: %w", err)
	}
	if err := i.client.AddFields(ctx, i.Collection, collectionSchema()...); err != nil {
		return fmt.Errorf("failed adding solr fields: %w", err)
	}
	if err := i.client.AddCopyFields(ctx, i.Collection, solr.CopyField{Source: "label_*", Dest: "_text_"}); err != nil {
		return fmt.Errorf("failed adding solr copy fields: %w", err)
	}
	return nil
}

// update posts a JSON update command and commits it.
func (i *Index) update(ctx context.Context, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return i.updateRaw(ctx, bytes.NewReader(data))
}

func (i *Index) updateRaw(ctx context.Context, body io.Reader) error {
	resp, err := i.client.Update(ctx, i.Collection, solr.JSON, body)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return errors.New(resp.Error.Msg)
	}
	return i.client.Commit(ctx, i.Collection)
}
