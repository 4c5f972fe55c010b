package models

// CycleStatistics summarises one measurement cycle. The latency fields are
// nil when the cycle produced no successful samples.
type CycleStatistics struct {
	PacketLoss float64 // percentage
	Mean       *float64
	Median     *float64
	Min        *float64
	Max        *float64
}

// HasLatency reports whether any successful sample contributed to the stats
func (s CycleStatistics) HasLatency() bool {
	return s.Mean != nil
}
