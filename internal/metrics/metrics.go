// Package metrics exposes timer activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

const namespace = "kitchen_timer"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ticks       prometheus.Counter
	transitions *prometheus.CounterVec
	alarms      prometheus.Counter
	counter     prometheus.Gauge
	mode        *prometheus.GaugeVec
	buttons     *prometheus.GaugeVec
	commands    *prometheus.CounterVec
}

// New creates and registers the timer collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of controller ticks.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Number of mode transitions.",
		}, []string{"from", "to"}),
		alarms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_total",
			Help:      "Number of times the countdown reached the alarm.",
		}),
		counter: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "counter_seconds",
			Help:      "Current counter value.",
		}),
		mode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mode",
			Help:      "1 for the active mode, 0 otherwise.",
		}, []string{"mode"}),
		buttons: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "button_held",
			Help:      "1 while the button is held.",
		}, []string{"button"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_commands_total",
			Help:      "Remote button commands by source.",
		}, []string{"source", "button", "action"}),
	}

	m.registry.MustRegister(
		m.ticks, m.transitions, m.alarms, m.counter, m.mode, m.buttons, m.commands,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.setMode(logic.ModeDefault)
	for _, b := range logic.AllButtons {
		m.buttons.WithLabelValues(b.String()).Set(0)
	}
	return m
}

// ObserveTick records one tick and the state it produced.
func (m *Metrics) ObserveTick(mode logic.Mode, counter int) {
	m.ticks.Inc()
	m.counter.Set(float64(counter))
	m.setMode(mode)
}

// ObserveEvent records a published transition.
func (m *Metrics) ObserveEvent(e logic.Event) {
	m.transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
	if e.Type == logic.EventAlarm {
		m.alarms.Inc()
	}
}

// ObserveButtons records the effective button levels.
func (m *Metrics) ObserveButtons(b logic.Buttons) {
	for _, btn := range logic.AllButtons {
		v := 0.0
		if b.Held(btn) {
			v = 1
		}
		m.buttons.WithLabelValues(btn.String()).Set(v)
	}
}

// ObserveCommand counts a remote button command from source ("http", "mqtt").
func (m *Metrics) ObserveCommand(source string, cmd logic.Command) {
	action := "release"
	if cmd.Pressed {
		action = "press"
	}
	m.commands.WithLabelValues(source, cmd.Button.String(), action).Inc()
}

func (m *Metrics) setMode(mode logic.Mode) {
	for _, md := range logic.Modes {
		v := 0.0
		if md == mode {
			v = 1
		}
		m.mode.WithLabelValues(md.String()).Set(v)
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
