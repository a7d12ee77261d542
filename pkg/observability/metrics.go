package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Group kinds.
const (
	GroupPaired = "paired"
	GroupSingle = "single"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Layouts      *prometheus.CounterVec
	Groups       *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
	Validations  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Layouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldlayout_layouts_total",
				Help: "Total number of layouts computed",
			},
			[]string{"form"},
		),
		Groups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldlayout_groups_total",
				Help: "Total number of groups emitted",
			},
			[]string{"kind"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldlayout_cache_lookups_total",
				Help: "Layout cache lookups by result",
			},
			[]string{"result"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldlayout_validations_total",
				Help: "Form validations by outcome",
			},
			[]string{"form", "valid"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Layouts, m.Groups, m.CacheLookups, m.Validations)
	}
	return m
}

// ObserveGroups records one group per kind.
// Nil-safe so the engine can call it unconditionally.
func (m *Metrics) ObserveGroups(paired, single int) {
	if m == nil {
		return
	}
	m.Groups.WithLabelValues(GroupPaired).Add(float64(paired))
	m.Groups.WithLabelValues(GroupSingle).Add(float64(single))
}

// ObserveLayout counts a computed layout.
func (m *Metrics) ObserveLayout(formID string) {
	if m == nil {
		return
	}
	m.Layouts.WithLabelValues(formID).Inc()
}

// ObserveCache counts a cache lookup.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveValidation counts a validation outcome.
func (m *Metrics) ObserveValidation(formID string, valid bool) {
	if m == nil {
		return
	}
	v := "false"
	if valid {
		v = "true"
	}
	m.Validations.WithLabelValues(formID, v).Inc()
}
