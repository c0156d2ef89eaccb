package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "cardquest"
	subsystem = "simulation"
)

// Registry holds every cardquest collector. It stays nil while metrics are
// disabled, which turns Register calls into no-ops.
var Registry *prometheus.Registry

// InitRegistry creates the registry along with Go runtime and process collectors
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has run
func IsEnabled() bool {
	return Registry != nil
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
