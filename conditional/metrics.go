package conditional

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeMatched = "matched"
	outcomeSkipped = "skipped"
)

// Evaluations counts condition evaluations by module and outcome.
//
//nolint:gochecknoglobals // collectors live on the global registry.
var Evaluations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hjarta_condition_evaluations_total",
		Help: "Number of module conditions evaluated, by module and outcome.",
	},
	[]string{"module", "outcome"},
)

//nolint:gochecknoinits // registration with the global registry on import.
func init() {
	prometheus.MustRegister(Evaluations)
}

func outcomeLabel(matched bool) string {
	if matched {
		return outcomeMatched
	}

	return outcomeSkipped
}
