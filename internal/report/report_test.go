package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"latency-monitor/internal/database"
	"latency-monitor/internal/models"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)

func floatPtr(v float64) *float64 {
	return &v
}

func newGenerator(t *testing.T, records []models.Record) *Generator {
	t.Helper()
	db, err := database.New(database.MemoryPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := db.SaveRecords(records); err != nil {
		t.Fatalf("save records: %v", err)
	}

	g := NewGenerator(db, "8.8.8.8")
	g.now = func() time.Time { return base.Add(24 * time.Hour) }
	return g
}

func sampleRecords() []models.Record {
	var records []models.Record
	for i := 0; i < 6; i++ {
		mean := 10 + float64(i)
		records = append(records, models.Record{
			Timestamp: base.Add(time.Duration(i) * 30 * time.Minute),
			Stats: models.CycleStatistics{
				PacketLoss: 0,
				Mean:       floatPtr(mean),
				Median:     floatPtr(mean),
				Min:        floatPtr(mean - 2),
				Max:        floatPtr(mean + 2),
			},
		})
	}
	records = append(records, models.Record{
		Timestamp: base.Add(3 * time.Hour),
		Stats:     models.CycleStatistics{PacketLoss: 100},
	})
	return records
}

func TestWriteTextReport(t *testing.T) {
	g := newGenerator(t, sampleRecords())

	var buf bytes.Buffer
	if err := g.writeTextReport(&buf); err != nil {
		t.Fatalf("writeTextReport: %v", err)
	}
	out := buf.String()

	expected := []string{
		"Latency Report - 8.8.8.8",
		"Period: 2024-05-01 10:00:00 to 2024-05-01 13:00:00",
		"Cycles: 7",
		"Cycles with loss: 1",
		"Worst Packet Loss: 100.00%",
		"Min RTT: 8.00 ms",
		"Max RTT: 17.00 ms",
		"2024-05-01 10:00",
		"2024-05-01 13:00",
		"[2024-05-01 13:00:00] Packet Loss: 100.0% | Mean: None ms",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextReportEmpty(t *testing.T) {
	g := newGenerator(t, nil)

	var buf bytes.Buffer
	if err := g.writeTextReport(&buf); err != nil {
		t.Fatalf("writeTextReport: %v", err)
	}
	if !strings.Contains(buf.String(), "No packet loss recorded.") {
		t.Errorf("expected empty loss section:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Average RTT: n/a") {
		t.Errorf("expected unavailable RTT:\n%s", buf.String())
	}
}

func TestGenerateReport(t *testing.T) {
	g := newGenerator(t, sampleRecords())

	dir, err := g.GenerateReport(t.TempDir())
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if filepath.Base(dir) != "latency_report_2024-05-02_10-00-00" {
		t.Errorf("unexpected report directory %s", dir)
	}

	for _, name := range []string{"summary.txt", "latency_8_8_8_8.png", "loss_8_8_8_8.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("expected %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestGenerateReportSkipsChartsWithoutData(t *testing.T) {
	g := newGenerator(t, []models.Record{{Timestamp: base, Stats: models.CycleStatistics{PacketLoss: 100}}})

	dir, err := g.GenerateReport(t.TempDir())
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "summary.txt")); err != nil {
		t.Errorf("expected summary: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "latency_8_8_8_8.png")); !os.IsNotExist(err) {
		t.Errorf("expected no latency chart, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"8.8.8.8":              "8_8_8_8",
		"2001:4860:4860::8888": "2001_4860_4860__8888",
		"fe80::1%eth0":         "fe80__1_eth0",
		"example.com":          "example_com",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
