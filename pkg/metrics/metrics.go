// Package metrics exposes Prometheus metrics for the driver core.
//
// A Registry owns its own prometheus.Registry so several drivers (and
// tests) never collide on the global default registerer. Every method is
// safe on a nil *Registry, which disables metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wlanshim"

// Registry holds all driver metrics.
type Registry struct {
	registry *prometheus.Registry

	// Radio metrics
	RadioCommands *prometheus.CounterVec

	// Upstream metrics
	UpstreamEvents *prometheus.CounterVec

	// Resume metrics
	ResumeResults *prometheus.CounterVec

	// Keep-alive metrics
	KeepAliveProbes prometheus.Counter

	// Station metrics
	Stations *prometheus.GaugeVec
}

// NewRegistry creates a Registry with all collectors registered, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RadioCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "radio_commands_total",
			Help:      "Commands submitted to the radio, by kind.",
		}, []string{"kind"}),
		UpstreamEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_events_total",
			Help:      "Events delivered to the upstream framework, by kind.",
		}, []string{"kind"}),
		ResumeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resume_results_total",
			Help:      "Resume engine outcomes, by stage and result.",
		}, []string{"stage", "result"}),
		KeepAliveProbes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keepalive_probes_total",
			Help:      "Idle probe frames sent by the keep-alive scheduler.",
		}),
		Stations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations",
			Help:      "Peers with a station record, by virtual interface.",
		}, []string{"vif"}),
	}

	r.registry.MustRegister(
		r.RadioCommands,
		r.UpstreamEvents,
		r.ResumeResults,
		r.KeepAliveProbes,
		r.Stations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer returns the underlying registry for scraping or testing.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RadioCommand counts one radio command.
func (r *Registry) RadioCommand(kind string) {
	if r == nil {
		return
	}
	r.RadioCommands.WithLabelValues(kind).Inc()
}

// UpstreamEvent counts one upstream event.
func (r *Registry) UpstreamEvent(kind string) {
	if r == nil {
		return
	}
	r.UpstreamEvents.WithLabelValues(kind).Inc()
}

// ResumeResult counts one resume engine call.
func (r *Registry) ResumeResult(stage, result string) {
	if r == nil {
		return
	}
	r.ResumeResults.WithLabelValues(stage, result).Inc()
}

// KeepAliveProbe counts one idle probe.
func (r *Registry) KeepAliveProbe() {
	if r == nil {
		return
	}
	r.KeepAliveProbes.Inc()
}

// SetStations records the station count of vif.
func (r *Registry) SetStations(vif string, n int) {
	if r == nil {
		return
	}
	r.Stations.WithLabelValues(vif).Set(float64(n))
}

// DeleteStations drops the station gauge of a removed interface.
func (r *Registry) DeleteStations(vif string) {
	if r == nil {
		return
	}
	r.Stations.DeleteLabelValues(vif)
}
