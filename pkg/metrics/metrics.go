// Package metrics exposes prometheus metrics of the rate controller.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/speednorm/pkg/controller"
	"github.com/umputun/speednorm/pkg/domain"
)

const namespace = "speednorm"

// StatusSource reports the live controller state
type StatusSource interface {
	Status() controller.Status
}

// Metrics holds the registry and the counters fed by the decision journal
type Metrics struct {
	registry      *prometheus.Registry
	decisions     *prometheus.CounterVec
	journalErrors prometheus.Counter
}

// New makes a registry with the decision counters and the standard go and
// process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Classification decisions by rule and outcome",
			},
			[]string{"rule", "match"},
		),
		journalErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_errors_total",
				Help:      "Decisions that could not be written to the journal",
			},
		),
	}

	m.registry.MustRegister(
		m.decisions,
		m.journalErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveStatus adds gauges read from the controller state on every scrape.
// Call it once.
func (m *Metrics) ObserveStatus(status StatusSource) {
	m.registry.MustRegister(
		gauge("observed_rate", "Last playback rate seen on the surface", func() float64 {
			return status.Status().ObservedRate
		}),
		gauge("user_default_rate", "Rate the user chose for non-matching content", func() float64 {
			return status.Status().UserDefaultRate
		}),
		gauge("readiness_attempts", "Readiness polls spent on the current content", func() float64 {
			return float64(status.Status().Attempts)
		}),
		gauge("override_active", "1 while a manual override is in effect", func() float64 {
			return boolValue(status.Status().OverrideActive)
		}),
		gauge("guard_forced", "1 while the transition guard holds the normal rate", func() float64 {
			return boolValue(status.Status().GuardForced)
		}),
	)
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError})
}

// Journal wraps a decision journal and counts every recorded decision. next may be nil.
func (m *Metrics) Journal(next controller.Journal) controller.Journal {
	return &countingJournal{next: next, m: m}
}

type countingJournal struct {
	next controller.Journal
	m    *Metrics
}

func (j *countingJournal) RecordDecision(ctx context.Context, d domain.Decision) error {
	j.m.decisions.WithLabelValues(string(d.Rule), strconv.FormatBool(d.Match)).Inc()
	if j.next == nil {
		return nil
	}
	if err := j.next.RecordDecision(ctx, d); err != nil {
		j.m.journalErrors.Inc()
		return err
	}
	return nil
}

func gauge(name, help string, fn func() float64) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, fn)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
