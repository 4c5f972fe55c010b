package ping

import (
	"regexp"
	"strconv"
	"strings"

	"latency-monitor/internal/models"
)

var (
	// Linux/Mac: "time=XX.X ms", Windows: "time=XXms" or "time<1ms"
	rttPattern = regexp.MustCompile(`(?i)time[=<]\s*([^\s]+)`)

	// Linux/Mac: "100 packets transmitted, 98 received, 2% packet loss"
	lossPercentPattern = regexp.MustCompile(`([0-9.]+)%\s*packet loss`)

	// Windows: "Packets: Sent = 4, Received = 3, Lost = 1 (25% loss),"
	sentPattern = regexp.MustCompile(`(?i)sent\s*=\s*(\d+)`)
	lostPattern = regexp.MustCompile(`(?i)lost\s*=\s*(\d+)`)
)

// Parse extracts latency samples and packet loss from a probe batch
func Parse(batch models.BatchResult) models.ParseResult {
	if batch.Structured() {
		return parseOutcomes(batch.Outcomes, batch.Sent)
	}
	return ParseOutput(batch.Output)
}

// ParseOutput scans ping output line by line. Lines that look like replies
// but do not hold a number are skipped. PacketLoss stays nil when no
// summary line is present.
func ParseOutput(output string) models.ParseResult {
	var result models.ParseResult

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rtt, ok := parseRTT(line); ok {
			result.Samples = append(result.Samples, rtt)
		}

		if loss, ok := parseLoss(line); ok {
			result.PacketLoss = &loss
		}
	}

	return result
}

func parseRTT(line string) (float64, bool) {
	matches := rttPattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return 0, false
	}
	value := strings.TrimSuffix(strings.ToLower(matches[1]), "ms")
	rtt, err := strconv.ParseFloat(value, 64)
	if err != nil || rtt < 0 {
		return 0, false
	}
	return rtt, true
}

func parseLoss(line string) (float64, bool) {
	if matches := lossPercentPattern.FindStringSubmatch(line); len(matches) > 1 {
		loss, err := strconv.ParseFloat(matches[1], 64)
		if err == nil {
			return loss, true
		}
	}

	lower := strings.ToLower(line)
	if !strings.Contains(lower, "lost =") && !strings.Contains(lower, "lost=") {
		return 0, false
	}
	sentMatch := sentPattern.FindStringSubmatch(line)
	lostMatch := lostPattern.FindStringSubmatch(line)
	if len(sentMatch) < 2 || len(lostMatch) < 2 {
		return 0, false
	}
	sent, err := strconv.Atoi(sentMatch[1])
	if err != nil || sent == 0 {
		return 0, false
	}
	lost, err := strconv.Atoi(lostMatch[1])
	if err != nil {
		return 0, false
	}
	return float64(lost) / float64(sent) * 100, true
}

func parseOutcomes(outcomes []models.Outcome, sent int) models.ParseResult {
	var result models.ParseResult
	lost := 0
	for _, o := range outcomes {
		if o.Lost {
			lost++
			continue
		}
		result.Samples = append(result.Samples, o.RTT)
	}

	if sent < len(outcomes) {
		sent = len(outcomes)
	}
	if sent > 0 {
		loss := float64(lost) / float64(sent) * 100
		result.PacketLoss = &loss
	}
	return result
}
