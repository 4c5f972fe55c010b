package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"latency-monitor/internal/models"
)

// Collector exposes the outcome of the latest cycle and running totals
type Collector struct {
	cycles        prometheus.Counter
	probeFailures prometheus.Counter
	alertsSent    prometheus.Counter
	alertFailures prometheus.Counter

	packetLoss prometheus.Gauge
	latency    *prometheus.GaugeVec
	duration   prometheus.Histogram
}

// New creates a Collector and registers it with reg
func New(reg prometheus.Registerer, target string) *Collector {
	labels := prometheus.Labels{"target": target}

	c := &Collector{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "latency_monitor_cycles_total",
			Help:        "Measurement cycles completed.",
			ConstLabels: labels,
		}),
		probeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "latency_monitor_probe_failures_total",
			Help:        "Cycles whose probe could not be run.",
			ConstLabels: labels,
		}),
		alertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "latency_monitor_alerts_sent_total",
			Help:        "Alert messages delivered to the mail transport.",
			ConstLabels: labels,
		}),
		alertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "latency_monitor_alert_failures_total",
			Help:        "Alerts that were skipped or failed to send.",
			ConstLabels: labels,
		}),
		packetLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "latency_monitor_packet_loss_percent",
			Help:        "Packet loss of the latest cycle.",
			ConstLabels: labels,
		}),
		latency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "latency_monitor_rtt_milliseconds",
			Help:        "Round-trip time summary of the latest cycle, NaN when no probe succeeded.",
			ConstLabels: labels,
		}, []string{"stat"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "latency_monitor_cycle_duration_seconds",
			Help:        "Time spent probing and reporting one cycle.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	reg.MustRegister(c.cycles, c.probeFailures, c.alertsSent, c.alertFailures, c.packetLoss, c.latency, c.duration)
	return c
}

// ObserveCycle records the statistics of a finished cycle
func (c *Collector) ObserveCycle(stats models.CycleStatistics, duration time.Duration) {
	c.cycles.Inc()
	c.packetLoss.Set(stats.PacketLoss)
	c.setLatency("mean", stats.Mean)
	c.setLatency("median", stats.Median)
	c.setLatency("min", stats.Min)
	c.setLatency("max", stats.Max)
	c.duration.Observe(duration.Seconds())
}

func (c *Collector) setLatency(stat string, v *float64) {
	g := c.latency.WithLabelValues(stat)
	if v == nil {
		g.Set(math.NaN())
		return
	}
	g.Set(*v)
}

// ProbeFailed counts a probe that could not be run
func (c *Collector) ProbeFailed() { c.probeFailures.Inc() }

// AlertSent counts a delivered alert
func (c *Collector) AlertSent() { c.alertsSent.Inc() }

// AlertFailed counts an alert that was skipped or failed
func (c *Collector) AlertFailed() { c.alertFailures.Inc() }

// Nop discards all observations, used when metrics are disabled
type Nop struct{}

func (Nop) ObserveCycle(models.CycleStatistics, time.Duration) {}
func (Nop) ProbeFailed()                                       {}
func (Nop) AlertSent()                                         {}
func (Nop) AlertFailed()                                       {}
