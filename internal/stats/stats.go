// Package stats reduces latency samples into per-cycle summary statistics.
package stats

import (
	"sort"
	"strconv"

	"latency-monitor/internal/models"
)

// DefaultLoss is reported when the probe output carried no loss summary.
// Undetermined loss is treated as total loss so that it alerts.
const DefaultLoss = 100.0

// Round rounds the exact binary value of v to the given number of decimal
// places. Scaling by a power of ten first would pull values stored just below
// a tie (2.675 is 2.67499...) over it.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Aggregate computes mean, median, min and max of samples rounded to two
// decimals. The latency fields stay nil when there are no samples. A nil
// loss falls back to DefaultLoss.
func Aggregate(samples []float64, loss *float64) models.CycleStatistics {
	result := models.CycleStatistics{PacketLoss: DefaultLoss}
	if loss != nil {
		result.PacketLoss = Round(*loss, 2)
	}

	if len(samples) == 0 {
		return result
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}

	result.Mean = rounded(sum / float64(len(sorted)))
	result.Median = rounded(median(sorted))
	result.Min = rounded(sorted[0])
	result.Max = rounded(sorted[len(sorted)-1])
	return result
}

// FromParse aggregates the output of the result parser
func FromParse(parsed models.ParseResult) models.CycleStatistics {
	return Aggregate(parsed.Samples, parsed.PacketLoss)
}

// median expects sorted input
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func rounded(v float64) *float64 {
	r := Round(v, 2)
	return &r
}
