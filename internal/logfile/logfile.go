// Package logfile reads and writes the append-only measurement log.
//
// Each cycle is one line:
//
//	[2024-05-01 12:00:00] Packet Loss: 0.0% | Mean: 11.4 ms | Median: 11.0 ms | Min: 9.5 ms | Max: 14.0 ms
//
// Missing latency values are written as None.
package logfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"latency-monitor/internal/models"
)

// TimestampLayout is the layout of the bracketed timestamp
const TimestampLayout = "2006-01-02 15:04:05"

var recordPattern = regexp.MustCompile(
	`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] Packet Loss: ([^%\s]+)% \| Mean: (\S+) ms \| Median: (\S+) ms \| Min: (\S+) ms \| Max: (\S+) ms$`,
)

// FormatRecord renders one log line for stats, without trailing newline
func FormatRecord(ts time.Time, stats models.CycleStatistics) string {
	return fmt.Sprintf("[%s] Packet Loss: %s%% | Mean: %s ms | Median: %s ms | Min: %s ms | Max: %s ms",
		ts.Format(TimestampLayout),
		models.FormatNumber(stats.PacketLoss),
		models.FormatOptional(stats.Mean),
		models.FormatOptional(stats.Median),
		models.FormatOptional(stats.Min),
		models.FormatOptional(stats.Max),
	)
}

// Append writes line to the file at path and syncs it before closing. The
// file is created when missing and never held open between calls.
func Append(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// ParseRecord parses a line written by FormatRecord. Timestamps are read in
// the local time zone, matching how they were written.
func ParseRecord(line string) (models.Record, error) {
	var rec models.Record

	matches := recordPattern.FindStringSubmatch(line)
	if matches == nil {
		return rec, fmt.Errorf("not a measurement record: %q", line)
	}

	ts, err := time.ParseInLocation(TimestampLayout, matches[1], time.Local)
	if err != nil {
		return rec, fmt.Errorf("parse timestamp: %w", err)
	}
	rec.Timestamp = ts

	loss, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return rec, fmt.Errorf("parse packet loss: %w", err)
	}
	rec.Stats.PacketLoss = loss

	fields := []**float64{&rec.Stats.Mean, &rec.Stats.Median, &rec.Stats.Min, &rec.Stats.Max}
	for i, field := range fields {
		v, err := parseOptional(matches[3+i])
		if err != nil {
			return rec, err
		}
		*field = v
	}

	return rec, nil
}

func parseOptional(s string) (*float64, error) {
	if s == models.Unavailable {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latency %q: %w", s, err)
	}
	return &v, nil
}

// ReadRecords parses every record in r. Lines that are not records are
// skipped and counted.
func ReadRecords(r io.Reader) (records []models.Record, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rec, parseErr := ParseRecord(line)
		if parseErr != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, skipped, fmt.Errorf("read log: %w", err)
	}
	return records, skipped, nil
}

// ReadFile parses every record of the log file at path
func ReadFile(path string) ([]models.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	return ReadRecords(f)
}
