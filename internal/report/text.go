package report

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"latency-monitor/internal/logfile"
)

func (g *Generator) generateTextReport(outputDir string) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return g.writeTextReport(file)
}

func (g *Generator) writeTextReport(w io.Writer) error {
	summary, err := g.db.GetSummary()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Latency Report - %s\n", g.target)
	fmt.Fprintf(w, "Generated: %s\n", g.now().Format(logfile.TimestampLayout))
	if summary.Cycles > 0 {
		fmt.Fprintf(w, "Period: %s to %s\n", summary.First.Format(logfile.TimestampLayout), summary.Last.Format(logfile.TimestampLayout))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "\nOVERALL STATISTICS")
	fmt.Fprintf(w, "  Cycles: %d\n", summary.Cycles)
	fmt.Fprintf(w, "  Cycles with loss: %d\n", summary.LossyCycles)
	fmt.Fprintf(w, "  Average Packet Loss: %.2f%%\n", summary.AvgLoss)
	fmt.Fprintf(w, "  Worst Packet Loss: %.2f%%\n", summary.MaxLoss)
	fmt.Fprintf(w, "  Average RTT: %s\n", formatMs(summary.AvgMean))
	fmt.Fprintf(w, "  Min RTT: %s\n", formatMs(summary.MinRTT))
	fmt.Fprintf(w, "  Max RTT: %s\n", formatMs(summary.MaxRTT))
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	hours, err := g.db.GetHourlyStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nHOURLY BREAKDOWN")
	fmt.Fprintf(w, "  %-16s  %6s  %9s  %9s  %12s  %12s\n", "Hour", "Cycles", "Avg Loss", "Max Loss", "Avg RTT", "Max RTT")
	for _, h := range hours {
		fmt.Fprintf(w, "  %-16s  %6d  %8.2f%%  %8.2f%%  %12s  %12s\n",
			h.Hour, h.Cycles, h.AvgLoss, h.MaxLoss, formatMs(h.AvgMean), formatMs(h.MaxRTT))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	lossy, err := g.db.GetCycles(true)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nCYCLES WITH PACKET LOSS")
	if len(lossy) == 0 {
		fmt.Fprintln(w, "No packet loss recorded.")
	}
	for _, r := range lossy {
		fmt.Fprintf(w, "  %s\n", logfile.FormatRecord(r.Timestamp, r.Stats))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	return nil
}

func formatMs(v sql.NullFloat64) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f ms", v.Float64)
}
