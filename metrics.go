package kbd

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional collaborator an Engine reports Prometheus counters
// to: actions emitted, keys created/unmapped, and the count of currently
// live machines. Metrics are additive instrumentation only; nothing in the
// engine's transition semantics depends on a Metrics being configured.
type Metrics struct {
	ActionsEmitted *prometheus.CounterVec
	KeysCreated    prometheus.Counter
	KeysUnmapped   prometheus.Counter
	MachinesLive   prometheus.Gauge
}

// NewMetrics constructs a Metrics with all vectors registered against reg.
// namespace is used as the Prometheus metric namespace, e.g. "kbd".
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		ActionsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "actions_emitted_total",
			Help:      "Count of Action values emitted by the engine, by kind (SendCode, Stop).",
		}, []string{"kind"}),
		KeysCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "keys_created_total",
			Help:      "Count of key state machines created.",
		}),
		KeysUnmapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "keys_unmapped_total",
			Help:      "Count of key presses with no configuration at the active layer.",
		}),
		MachinesLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "machines_live",
			Help:      "Count of currently live key state machines.",
		}),
	}
	reg.MustRegister(m.ActionsEmitted, m.KeysCreated, m.KeysUnmapped, m.MachinesLive)
	return m
}

func (m *Metrics) observeAction(kind ActionKind) {
	if m == nil {
		return
	}
	m.ActionsEmitted.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeKeyCreated() {
	if m == nil {
		return
	}
	m.KeysCreated.Inc()
}

func (m *Metrics) observeKeyUnmapped() {
	if m == nil {
		return
	}
	m.KeysUnmapped.Inc()
}

func (m *Metrics) setMachinesLive(n int) {
	if m == nil {
		return
	}
	m.MachinesLive.Set(float64(n))
}
