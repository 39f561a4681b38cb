package lineage

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	dropNoMatch       = "no_match"
	dropDatasetLookup = "dataset_lookup"

	outcomeRegistered = "registered"
	outcomeSkipped    = "skipped"
	outcomeFailed     = "failed"
)

// Metrics counts what resolution and registration did.
//
// nil *Metrics is valid and counts nothing.
type Metrics struct {
	Resolved      *prometheus.CounterVec
	Dropped       *prometheus.CounterVec
	Registrations *prometheus.CounterVec
}

// NewMetrics creates counters and registers them to reg.
//
// When reg already has them, the registered ones are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Resolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paikit",
				Subsystem: "lineage",
				Name:      "resolved_total",
				Help:      "Lineage entities resolved, partitioned by entity type.",
			},
			[]string{"entity_type"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paikit",
				Subsystem: "lineage",
				Name:      "dropped_total",
				Help:      "Lineage entities which could not be resolved, partitioned by reason.",
			},
			[]string{"reason"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paikit",
				Subsystem: "lineage",
				Name:      "registrations_total",
				Help:      "Lineage registration attempts, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []**prometheus.CounterVec{&m.Resolved, &m.Dropped, &m.Registrations} {
		if err := reg.Register(*c); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if !errors.As(err, &are) {
				return nil, err
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}
			*c = existing
		}
	}
	return m, nil
}

func (m *Metrics) resolved(t EntityType) {
	if m == nil {
		return
	}
	m.Resolved.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) dropped(reason string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) registration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}
