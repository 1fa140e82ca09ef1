// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "algoquest"

var (
	// QuizzesStarted counts runs started per mode.
	QuizzesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quizzes_started_total",
		Help:      "Quiz runs started, by mode.",
	}, []string{"mode"})

	// QuizzesFinished counts runs that reached the results view.
	QuizzesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quizzes_finished_total",
		Help:      "Quiz runs finished, by mode.",
	}, []string{"mode"})

	// Answers counts accepted answers by mode and outcome.
	Answers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_total",
		Help:      "Accepted answers, by mode and result.",
	}, []string{"mode", "result"})

	// Resumes counts resume prompts answered, by decision.
	Resumes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resumes_total",
		Help:      "Resume prompts answered, by decision.",
	}, []string{"decision"})

	// SessionsDiscarded counts persisted sessions dropped on load.
	SessionsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_discarded_total",
		Help:      "Persisted sessions discarded on load, by reason.",
	}, []string{"reason"})

	// StorageErrors counts failed store operations that play continued through.
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Failed persistence operations, by store and operation.",
	}, []string{"store", "op"})

	// ActiveConnections tracks live quiz WebSocket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Live quiz WebSocket connections.",
	})
)

// Result labels an answer outcome.
func Result(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
