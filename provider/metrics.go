package provider

import (
	"expvar"
	"sync"
)

// Metrics exposes provider operation counters via expvar's built-in
// /debug/vars endpoint.
type Metrics struct {
	operations        *expvar.Map // scimcore_provider_operations_total{op,status}
	errors            *expvar.Map // scimcore_provider_errors_total{kind}
	versionMismatches *expvar.Int
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// GetMetrics returns the process-wide provider metrics singleton.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			operations:        expvar.NewMap("scimcore_provider_operations_total"),
			errors:            expvar.NewMap("scimcore_provider_errors_total"),
			versionMismatches: expvar.NewInt("scimcore_provider_version_mismatches_total"),
		}
	})
	return metrics
}

func (m *Metrics) recordOp(op, status string) {
	m.operations.Add(op+"."+status, 1)
}

func (m *Metrics) recordError(kind string) {
	m.errors.Add(kind, 1)
}

func (m *Metrics) recordVersionMismatch() {
	m.versionMismatches.Add(1)
}
