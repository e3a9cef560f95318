package compiler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compilesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cnlgraph_compiles_total",
		Help: "Number of compile runs.",
	})

	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cnlgraph_operations_total",
		Help: "Graph operations produced by compiles, by kind and status.",
	}, []string{"kind", "status"})

	compileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cnlgraph_compile_errors_total",
		Help: "Parse, lowering, and diff errors collected across compiles.",
	})

	compileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cnlgraph_compile_duration_seconds",
		Help:    "Wall time of compile runs.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeCompile(res *Result, elapsed time.Duration) {
	compilesTotal.Inc()
	compileErrorsTotal.Add(float64(len(res.Errors)))
	compileDuration.Observe(elapsed.Seconds())
	for _, entry := range res.Audit {
		operationsTotal.WithLabelValues(string(entry.Kind), entry.Status).Inc()
	}
}
