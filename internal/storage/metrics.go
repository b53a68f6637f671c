package storage

import (
	"github.com/uber-go/tally/v4"
)

// Metrics tracks storage operations.
type Metrics struct {
	newCounter    tally.Counter
	deleteCounter tally.Counter
	saveCounter   tally.Counter
	reloadCounter tally.Counter
	errorCounter  tally.Counter

	saveTimer   tally.Timer
	reloadTimer tally.Timer
	objects     tally.Gauge

	scope tally.Scope
}

// NewMetrics returns a new Metrics struct, with all metrics initialized
// and rooted at the given tally.Scope
func NewMetrics(scope tally.Scope) *Metrics {
	s := scope.SubScope("storage")
	return &Metrics{
		newCounter:    s.Counter("new"),
		deleteCounter: s.Counter("delete"),
		saveCounter:   s.Counter("save"),
		reloadCounter: s.Counter("reload"),
		errorCounter:  s.Counter("errors"),

		saveTimer:   s.Timer("save_latency"),
		reloadTimer: s.Timer("reload_latency"),
		objects:     s.Gauge("objects"),

		scope: s,
	}
}
