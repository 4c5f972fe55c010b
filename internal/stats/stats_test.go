package stats

import (
	"testing"

	"latency-monitor/internal/models"
	"latency-monitor/internal/ping"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		loss    *float64
		mean    float64
		median  float64
		min     float64
		max     float64
		outLoss float64
	}{
		{
			name:    "odd sample count",
			samples: []float64{10.0, 12.5, 11.0, 9.5, 14.0},
			loss:    floatPtr(0),
			mean:    11.4, median: 11.0, min: 9.5, max: 14.0, outLoss: 0,
		},
		{
			name:    "even sample count",
			samples: []float64{4, 1, 3, 2},
			loss:    floatPtr(20),
			mean:    2.5, median: 2.5, min: 1, max: 4, outLoss: 20,
		},
		{
			name:    "rounding to two decimals",
			samples: []float64{1.111, 2.226, 3.339},
			loss:    floatPtr(100.0 / 3.0),
			mean:    2.23, median: 2.23, min: 1.11, max: 3.34, outLoss: 33.33,
		},
		{
			name:    "single sample without loss summary",
			samples: []float64{7.25},
			mean:    7.25, median: 7.25, min: 7.25, max: 7.25, outLoss: 100,
		},
		{
			name:    "mean just below a tie",
			samples: []float64{2.6, 2.75},
			loss:    floatPtr(0),
			mean:    2.67, median: 2.67, min: 2.6, max: 2.75, outLoss: 0,
		},
		{
			name:    "sample stored below a tie",
			samples: []float64{1.115},
			loss:    floatPtr(0),
			mean:    1.11, median: 1.11, min: 1.11, max: 1.11, outLoss: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.samples, tt.loss)
			if !got.HasLatency() {
				t.Fatal("expected latency fields to be set")
			}
			check(t, "mean", *got.Mean, tt.mean)
			check(t, "median", *got.Median, tt.median)
			check(t, "min", *got.Min, tt.min)
			check(t, "max", *got.Max, tt.max)
			check(t, "loss", got.PacketLoss, tt.outLoss)
		})
	}
}

func TestAggregateNoSamples(t *testing.T) {
	tests := []struct {
		name string
		loss *float64
		want float64
	}{
		{"undetermined loss defaults to total loss", nil, 100},
		{"explicit loss is kept", floatPtr(100), 100},
		{"explicit zero loss is kept", floatPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(nil, tt.loss)
			if got.Mean != nil || got.Median != nil || got.Min != nil || got.Max != nil {
				t.Fatalf("expected all latency fields absent, got %+v", got)
			}
			check(t, "loss", got.PacketLoss, tt.want)
		})
	}
}

func TestAggregateDoesNotReorderInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	Aggregate(samples, nil)
	if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
		t.Fatalf("input was modified: %v", samples)
	}
}

func TestLossFromCounts(t *testing.T) {
	tests := []struct {
		lost, sent int
		want       float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 100, 1},
		{7, 9, 77.78},
		{0, 4, 0},
	}

	for _, tt := range tests {
		outcomes := make([]models.Outcome, 0, tt.sent)
		for i := 0; i < tt.sent; i++ {
			outcomes = append(outcomes, models.Outcome{Lost: i < tt.lost, RTT: 1})
		}
		got := FromParse(ping.Parse(models.BatchResult{Sent: tt.sent, Outcomes: outcomes}))
		check(t, "loss", got.PacketLoss, tt.want)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{11.4, 11.4},
		{1.005, 1.0}, // 1.005 is stored as 1.00499...
		{2.675, 2.67}, // 2.67499...
		{1.115, 1.11}, // 1.11499...
		{0.125, 0.12}, // exact tie rounds to even
		{0.375, 0.38},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{-1.234, -1.23},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in, 2); got != tt.want {
			t.Errorf("Round(%v, 2) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func check(t *testing.T, field string, got, want float64) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
