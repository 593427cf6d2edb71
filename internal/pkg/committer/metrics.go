package committer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Commit results recorded by Metrics.
const (
	ResultCommitted = "committed"
	ResultEmpty     = "empty"
	ResultConflict  = "conflict"
	ResultFailed    = "failed"
)

// Metrics counts commit outcomes. A nil *Metrics records nothing.
type Metrics struct {
	commits   *prometheus.CounterVec
	mutations prometheus.Counter
	accepted  prometheus.Counter
}

// NewMetrics creates the committer counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "committer",
			Name:      "commits_total",
			Help:      "Commit plans applied, by result.",
		}, []string{"result"}),
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "committer",
			Name:      "mutations_total",
			Help:      "Spanner mutations written by successful commits.",
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "committer",
			Name:      "accepted_aggregates_total",
			Help:      "Tracked aggregates accepted after a commit.",
		}),
	}
	reg.MustRegister(m.commits, m.mutations, m.accepted)
	return m
}

func (m *Metrics) observe(plan *CommitPlan, err error) {
	if m == nil {
		return
	}

	switch {
	case errors.Is(err, ErrVersionConflict):
		m.commits.WithLabelValues(ResultConflict).Inc()
	case err != nil:
		m.commits.WithLabelValues(ResultFailed).Inc()
	case plan.IsEmpty():
		m.commits.WithLabelValues(ResultEmpty).Inc()
		m.accepted.Add(float64(len(plan.tracked)))
	default:
		m.commits.WithLabelValues(ResultCommitted).Inc()
		m.mutations.Add(float64(plan.Count()))
		m.accepted.Add(float64(len(plan.tracked)))
	}
}
