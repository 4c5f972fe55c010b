package alert

import "latency-monitor/internal/models"

// ShouldNotify reports whether a cycle warrants an alert. Any loss at all
// triggers one and nothing is suppressed across cycles, so a flaky link
// alerts on every lossy cycle.
func ShouldNotify(stats models.CycleStatistics) bool {
	return stats.PacketLoss > 0
}

// Subject renders the alert subject line for stats
func Subject(stats models.CycleStatistics) string {
	return "Ping Alert: Packet Loss Detected (" + models.FormatNumber(stats.PacketLoss) + "%)"
}
