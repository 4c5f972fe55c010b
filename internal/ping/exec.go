package ping

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"latency-monitor/internal/models"
)

// ExecProber runs the platform ping utility and captures its standard output
type ExecProber struct {
	Binary  string
	Timeout time.Duration

	goos string
}

// NewExec creates an ExecProber for the current platform. A zero timeout
// leaves the probe bounded only by the utility itself.
func NewExec(timeout time.Duration) *ExecProber {
	return &ExecProber{
		Binary:  "ping",
		Timeout: timeout,
		goos:    runtime.GOOS,
	}
}

// commandArgs builds the ping arguments, the count flag differs per platform
func commandArgs(goos, target string, count int) []string {
	countFlag := "-c"
	if goos == "windows" {
		countFlag = "-n"
	}
	return []string{countFlag, strconv.Itoa(count), target}
}

// Probe executes the ping utility against target. When the utility cannot be
// started the returned batch is marked failed and carries the error text as
// its output, so parsing it yields no samples and no loss information.
func (p *ExecProber) Probe(ctx context.Context, target string, count int) (models.BatchResult, error) {
	result := models.BatchResult{
		Target: target,
		Sent:   count,
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := commandArgs(p.goos, target, count)
	logrus.Tracef("EXEC: %v %v", p.Binary, args)

	cmd := exec.CommandContext(ctx, p.Binary, args...)
	output, err := cmd.Output()
	result.Output = string(output)

	if err != nil {
		if len(output) > 0 {
			// ping exits non-zero when replies are missing or it was cut short
			logrus.WithError(err).Debug("ping exited with output, keeping partial result")
			return result, nil
		}
		result.Failed = true
		result.Output = fmt.Sprintf("Ping command failed: %v", err)
		return result, fmt.Errorf("run %s: %w", p.Binary, err)
	}

	return result, nil
}
