package thesaurus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts loader results per variant. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	keywords *prometheus.CounterVec
	labels   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesaurus",
			Subsystem: "loader",
			Name:      "runs_total",
			Help:      "Thesaurus loads by variant and result",
		}, []string{"variant", "result"}),
		keywords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesaurus",
			Subsystem: "loader",
			Name:      "keywords_total",
			Help:      "Concepts processed by variant and outcome",
		}, []string{"variant", "outcome"}),
		labels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesaurus",
			Subsystem: "loader",
			Name:      "labels_total",
			Help:      "Keyword labels processed by variant and outcome",
		}, []string{"variant", "outcome"}),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{m.runs, m.keywords, m.labels} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeRun(variant string, summary *Summary, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.runs.WithLabelValues(variant, "failed").Inc()
		return
	case summary.DryRun:
		m.runs.WithLabelValues(variant, "dry_run").Inc()
		return
	}
	m.runs.WithLabelValues(variant, "stored").Inc()
	m.keywords.WithLabelValues(variant, OutcomeStored.String()).Add(float64(summary.Keywords))
	m.keywords.WithLabelValues(variant, OutcomeSkipped.String()).Add(float64(summary.KeywordsSkipped))
	m.keywords.WithLabelValues(variant, OutcomeFailed.String()).Add(float64(summary.KeywordsFailed))
	m.labels.WithLabelValues(variant, OutcomeStored.String()).Add(float64(summary.Labels))
	m.labels.WithLabelValues(variant, OutcomeSkipped.String()).Add(float64(summary.LabelsDropped))
	m.labels.WithLabelValues(variant, OutcomeFailed.String()).Add(float64(summary.LabelsFailed))
}
