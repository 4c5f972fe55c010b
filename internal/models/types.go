package models

import (
	"context"
	"time"
)

// Prober sends count probes to target and returns the raw batch
type Prober interface {
	Probe(ctx context.Context, target string, count int) (BatchResult, error)
}

// Notifier dispatches an alert message
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Recorder receives the outcome of every cycle for observability
type Recorder interface {
	ObserveCycle(stats CycleStatistics, duration time.Duration)
	ProbeFailed()
	AlertSent()
	AlertFailed()
}

// Record is one parsed line of the measurement log
type Record struct {
	Timestamp time.Time
	Stats     CycleStatistics
}
