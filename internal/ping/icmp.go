package ping

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/sirupsen/logrus"

	"latency-monitor/internal/models"
)

// grace is added to the expected send duration when no timeout is configured
const grace = 5 * time.Second

// ICMPProber sends echo requests directly instead of scraping ping output
type ICMPProber struct {
	Interval   time.Duration
	Timeout    time.Duration
	Privileged bool
}

// NewICMP creates an ICMPProber sending one probe per second
func NewICMP(timeout time.Duration, privileged bool) *ICMPProber {
	return &ICMPProber{
		Interval:   time.Second,
		Timeout:    timeout,
		Privileged: privileged,
	}
}

// deadline bounds the run, since the pinger otherwise waits for every reply
func (p *ICMPProber) deadline(count int) time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return time.Duration(count)*p.Interval + grace
}

// Probe sends count echo requests to target and returns one outcome per probe
func (p *ICMPProber) Probe(ctx context.Context, target string, count int) (models.BatchResult, error) {
	result := models.BatchResult{
		Target: target,
		Sent:   count,
	}

	pinger, err := probing.NewPinger(target)
	if err != nil {
		result.Failed = true
		result.Output = fmt.Sprintf("Ping command failed: %v", err)
		return result, fmt.Errorf("resolve %s: %w", target, err)
	}
	pinger.Count = count
	pinger.Interval = p.Interval
	pinger.Timeout = p.deadline(count)
	pinger.RecordRtts = true
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		result.Failed = true
		result.Output = fmt.Sprintf("Ping command failed: %v", err)
		return result, fmt.Errorf("icmp probe %s: %w", target, err)
	}

	stats := pinger.Statistics()
	logrus.WithFields(logrus.Fields{
		"sent": stats.PacketsSent,
		"recv": stats.PacketsRecv,
		"dups": stats.PacketsRecvDuplicates,
	}).Debug("icmp probe finished")

	result.Sent = stats.PacketsSent
	result.Outcomes = outcomesFromStats(stats)
	return result, nil
}

func outcomesFromStats(stats *probing.Statistics) []models.Outcome {
	outcomes := make([]models.Outcome, 0, stats.PacketsSent)
	for _, rtt := range stats.Rtts {
		outcomes = append(outcomes, models.Outcome{RTT: float64(rtt) / float64(time.Millisecond)})
	}
	for i := stats.PacketsRecv; i < stats.PacketsSent; i++ {
		outcomes = append(outcomes, models.Outcome{Lost: true})
	}
	return outcomes
}
