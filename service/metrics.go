package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importedApps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "launcher",
		Subsystem: "import",
		Name:      "entries_total",
		Help:      "Imported entries by outcome (imported, updated, skipped).",
	}, []string{"outcome"})

	appLaunches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "launcher",
		Subsystem: "apps",
		Name:      "launches_total",
		Help:      "Recorded app launches.",
	})
)
