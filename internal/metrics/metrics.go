// Package metrics exposes the Prometheus collectors of the contractors
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	saves   *prometheus.CounterVec
	exports *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contractor_save_total",
			Help: "Contractor save attempts by outcome.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contractor_export_total",
			Help: "Generated contractor documents by format.",
		}, []string{"format"}),
	}
	if reg != nil {
		reg.MustRegister(r.saves, r.exports)
	}
	return r
}

func (r *Recorder) Save(outcome string) {
	if r == nil {
		return
	}
	r.saves.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Export(format string) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(format).Inc()
}
