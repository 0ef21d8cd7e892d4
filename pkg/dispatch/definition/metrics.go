package definition

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

var _ types.Metrics = (*Metrics)(nil)

// Metrics is the default types.Metrics implementation, backed by
// prometheus/client_golang CounterVecs. Grounded on the teacher's own
// go.mod, which already pulls in prometheus/common transitively for its
// transport layer; this module is the first thing in the tree to use
// the metrics side of that stack directly.
type Metrics struct {
	dupes       prometheus.Counter
	dupeBytes   prometheus.Counter
	backlog     prometheus.Counter
	checkOwner  *prometheus.CounterVec
	notifyOut   *prometheus.CounterVec
}

// NewMetrics registers every counter against reg and returns a Metrics
// ready to hand to a Dispatcher. Passing prometheus.NewRegistry() keeps
// tests isolated from the global default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dupes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "duplicate_events_total",
			Help:      "Events suppressed by the dedup buffer.",
		}),
		dupeBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "duplicate_event_bytes_total",
			Help:      "Encoded byte count of events suppressed by the dedup buffer.",
		}),
		backlog: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "ipc_backlog_total",
			Help:      "Local IPC sends that failed or reported a negative backlog count.",
		}),
		checkOwner: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "check_owner_total",
			Help:      "Precheck ownership decisions by check kind and owner.",
		}, []string{"check_kind", "owner"}),
		notifyOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "notification_outcome_total",
			Help:      "Notification start decisions by reason, type, check type and outcome.",
		}, []string{"reason", "notify_type", "check_type", "outcome"}),
	}
	reg.MustRegister(m.dupes, m.dupeBytes, m.backlog, m.checkOwner, m.notifyOut)
	return m
}

func (m *Metrics) IncDupe(n int) {
	m.dupes.Inc()
	m.dupeBytes.Add(float64(n))
}

func (m *Metrics) IncBacklog() { m.backlog.Inc() }

func (m *Metrics) IncCheckOwner(checkKind, owner string) {
	m.checkOwner.WithLabelValues(checkKind, owner).Inc()
}

func (m *Metrics) IncNotifyOutcome(reason, notifyType, checkType, outcome string) {
	m.notifyOut.WithLabelValues(reason, notifyType, checkType, outcome).Inc()
}
