package monitor

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"latency-monitor/internal/config"
	"latency-monitor/internal/models"
	"latency-monitor/internal/ping"
	"latency-monitor/internal/stats"
)

// Monitor runs measurement cycles against a single target, one at a time
type Monitor struct {
	config   config.Config
	prober   models.Prober
	reporter *Reporter
	recorder models.Recorder
	now      func() time.Time
}

// New creates a new Monitor. Records are echoed to out.
func New(cfg config.Config, prober models.Prober, notifier models.Notifier, recorder models.Recorder, out io.Writer) *Monitor {
	return &Monitor{
		config:   cfg,
		prober:   prober,
		reporter: NewReporter(cfg.LogPath, out, notifier, recorder),
		recorder: recorder,
		now:      time.Now,
	}
}

// Run executes a cycle, sleeps for the configured interval and repeats until
// ctx is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{
		"target":   m.config.Target,
		"interval": m.config.Interval,
		"count":    m.config.Count,
		"log":      m.config.LogPath,
		"prober":   m.config.Prober,
	}).Info("Latency monitor started")

	for {
		if _, err := m.RunCycle(ctx); err != nil {
			logrus.Info("Monitor stopped")
			return nil
		}

		timer := time.NewTimer(m.config.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Info("Monitor stopped")
			return nil
		case <-timer.C:
		}
	}
}

// RunCycle probes the target once, aggregates the result and reports it.
// It only returns an error when ctx was cancelled mid-cycle, in which case
// nothing is reported.
func (m *Monitor) RunCycle(ctx context.Context) (models.CycleStatistics, error) {
	start := time.Now()
	entry := logrus.WithFields(logrus.Fields{
		"cycle":  uuid.NewString(),
		"target": m.config.Target,
	})

	batch, err := m.prober.Probe(ctx, m.config.Target, m.config.Count)
	if ctx.Err() != nil {
		return models.CycleStatistics{}, ctx.Err()
	}
	if batch.Failed {
		entry.WithError(err).WithField("output", batch.Output).Warn("Probe failed")
		m.recorder.ProbeFailed()
	} else if err != nil {
		entry.WithError(err).Debug("Probe returned an error with a usable result")
	}

	parsed := ping.Parse(batch)
	if parsed.PacketLoss == nil {
		entry.Debug("No loss summary in probe output, assuming total loss")
	}
	result := stats.FromParse(parsed)
	entry.WithFields(logrus.Fields{
		"samples": len(parsed.Samples),
		"loss":    result.PacketLoss,
	}).Debug("Cycle aggregated")

	m.reporter.Report(ctx, entry, result, m.now())
	m.recorder.ObserveCycle(result, time.Since(start))
	return result, nil
}
