package sensor

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus collectors shared by all sensors of a process.
type Metrics struct {
	ticks         *prometheus.CounterVec
	failures      *prometheus.CounterVec
	notifications *prometheus.CounterVec
	resets        *prometheus.CounterVec
	value         *prometheus.GaugeVec
	tickDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"object", "instance"}
	m := &Metrics{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leshan_sensor_ticks_total",
			Help: "Sampling ticks that committed a new value.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leshan_sensor_tick_failures_total",
			Help: "Sampling ticks dropped because the source failed.",
		}, labels),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leshan_sensor_notifications_total",
			Help: "Change notifications dispatched.",
		}, labels),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leshan_sensor_resets_total",
			Help: "Min/max resets executed.",
		}, labels),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "leshan_sensor_value",
			Help: "Current sensor value.",
		}, labels),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leshan_sensor_tick_duration_seconds",
			Help:    "Time a tick held the instance lock.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, labels),
	}
	if reg != nil {
		reg.MustRegister(m.ticks, m.failures, m.notifications, m.resets, m.value, m.tickDuration)
	}
	return m
}

func instanceLabels(objectID, instanceID uint16) prometheus.Labels {
	return prometheus.Labels{
		"object":   strconv.Itoa(int(objectID)),
		"instance": strconv.Itoa(int(instanceID)),
	}
}

func (m *Metrics) tick(l prometheus.Labels, value float64, d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.With(l).Inc()
	m.value.With(l).Set(value)
	m.tickDuration.With(l).Observe(d.Seconds())
}

func (m *Metrics) failure(l prometheus.Labels) {
	if m == nil {
		return
	}
	m.failures.With(l).Inc()
}

func (m *Metrics) notification(l prometheus.Labels) {
	if m == nil {
		return
	}
	m.notifications.With(l).Inc()
}

func (m *Metrics) reset(l prometheus.Labels) {
	if m == nil {
		return
	}
	m.resets.With(l).Inc()
}
