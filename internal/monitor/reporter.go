package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"latency-monitor/internal/alert"
	"latency-monitor/internal/logfile"
	"latency-monitor/internal/models"
	"latency-monitor/internal/notify"
)

// Reporter persists each cycle to the log file, echoes it and raises alerts
type Reporter struct {
	logPath  string
	out      io.Writer
	notifier models.Notifier
	recorder models.Recorder
}

// NewReporter creates a Reporter appending to logPath and echoing to out
func NewReporter(logPath string, out io.Writer, notifier models.Notifier, recorder models.Recorder) *Reporter {
	return &Reporter{
		logPath:  logPath,
		out:      out,
		notifier: notifier,
		recorder: recorder,
	}
}

// Report writes the record for stats and dispatches an alert when the
// policy asks for one. Failures are logged and never abort the cycle.
func (r *Reporter) Report(ctx context.Context, entry *logrus.Entry, stats models.CycleStatistics, ts time.Time) string {
	line := logfile.FormatRecord(ts, stats)

	if err := logfile.Append(r.logPath, line); err != nil {
		entry.WithError(err).WithField("path", r.logPath).Error("Failed to write log record")
	}
	fmt.Fprintln(r.out, line)

	if alert.ShouldNotify(stats) {
		r.dispatch(ctx, entry, alert.Subject(stats), line)
	}
	return line
}

func (r *Reporter) dispatch(ctx context.Context, entry *logrus.Entry, subject, body string) {
	err := r.notifier.Notify(ctx, subject, body)
	switch {
	case err == nil:
		r.recorder.AlertSent()
	case errors.Is(err, notify.ErrNotConfigured):
		entry.Warn("GMAIL_USER or GMAIL_PASS not set. Skipping email.")
		r.recorder.AlertFailed()
	default:
		entry.WithError(err).Error("Failed to send email")
		r.recorder.AlertFailed()
	}
}
