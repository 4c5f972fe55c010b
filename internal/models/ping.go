package models

// Outcome is the result of a single probe. Lost probes carry no RTT.
type Outcome struct {
	Lost bool
	RTT  float64 // milliseconds
}

// BatchResult is the raw result of one probing cycle. Exec based probers
// fill Output with the utility's text, native probers fill Outcomes.
// Failed is set when the probe could not run at all.
type BatchResult struct {
	Target   string
	Sent     int
	Output   string
	Outcomes []Outcome
	Failed   bool
}

// Structured reports whether the batch carries per-probe outcomes instead of text
func (b BatchResult) Structured() bool {
	return b.Outcomes != nil
}

// ParseResult holds the latency samples and loss extracted from a batch.
// PacketLoss is nil when no loss information was found.
type ParseResult struct {
	Samples    []float64
	PacketLoss *float64
}
