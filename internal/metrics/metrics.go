package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeNotFound   = "not_found"
	OutcomeConflict   = "conflict"
	OutcomeFailure    = "failure"
)

// Metrics tracks registration throughput and notification delivery.
type Metrics struct {
	Registrations        *prometheus.CounterVec
	Notifications        *prometheus.CounterVec
	RegistrationDuration prometheus.Histogram
	CacheLookups         *prometheus.CounterVec
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conference_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conference_notifications_total",
			Help: "Notifications sent by channel and result",
		}, []string{"channel", "result"}),
		RegistrationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "conference_registration_duration_seconds",
			Help:    "Duration of the registration workflow",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conference_directory_cache_lookups_total",
			Help: "Directory cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// Notification results.
const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

// IncrementNotification records a delivery attempt. A channel that is not
// configured reports NotificationDisabled instead of failing.
func (m *Metrics) IncrementNotification(channel string, err error, disabled bool) {
	if m == nil {
		return
	}
	result := NotificationSent
	switch {
	case disabled:
		result = NotificationDisabled
	case err != nil:
		result = NotificationFailed
	}
	m.Notifications.WithLabelValues(channel, result).Inc()
}

// ObserveRegistration records the duration since start.
func (m *Metrics) ObserveRegistration(start time.Time) {
	if m == nil {
		return
	}
	m.RegistrationDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
