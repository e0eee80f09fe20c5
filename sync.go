package main

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurussync"
)

// startSync runs the directory sync once and then on the configured schedule, if any.
func startSync(syncer *thesaurussync.Syncer, schedule string, logger *zap.Logger) (*cron.Cron, error) {
	if len(schedule) == 0 {
		go syncer.Synchronize()
		return nil, nil
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, syncer.Synchronize); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("started scheduled thesaurus sync", zap.String("cron", schedule), zap.Int("entries", len(c.Entries())))
	// import pending files right away instead of waiting for the first tick
	go syncer.Synchronize()
	return c, nil
}
