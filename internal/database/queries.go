package database

import (
	"database/sql"
	"fmt"
	"time"

	"latency-monitor/internal/models"
)

const (
	tsLayout   = "2006-01-02 15:04:05"
	hourLayout = "2006-01-02 15:00"
)

// Summary aggregates every stored cycle
type Summary struct {
	Cycles      int
	LossyCycles int
	AvgLoss     float64
	MaxLoss     float64
	AvgMean     sql.NullFloat64
	MinRTT      sql.NullFloat64
	MaxRTT      sql.NullFloat64
	First       time.Time
	Last        time.Time
}

// HourlyStat aggregates the cycles of one clock hour
type HourlyStat struct {
	Hour    string
	Cycles  int
	AvgLoss float64
	MaxLoss float64
	AvgMean sql.NullFloat64
	MaxRTT  sql.NullFloat64
}

// SaveRecords stores records in a single transaction
func (db *DB) SaveRecords(records []models.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
        INSERT INTO cycles (ts, hour, packet_loss, mean_ms, median_ms, min_ms, max_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Timestamp.Format(tsLayout),
			r.Timestamp.Format(hourLayout),
			r.Stats.PacketLoss,
			nullable(r.Stats.Mean),
			nullable(r.Stats.Median),
			nullable(r.Stats.Min),
			nullable(r.Stats.Max),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert cycle %s: %w", r.Timestamp.Format(tsLayout), err)
		}
	}

	return tx.Commit()
}

// GetSummary aggregates all stored cycles
func (db *DB) GetSummary() (Summary, error) {
	query := `
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN packet_loss > 0 THEN 1 ELSE 0 END), 0),
            COALESCE(AVG(packet_loss), 0),
            COALESCE(MAX(packet_loss), 0),
            AVG(mean_ms),
            MIN(min_ms),
            MAX(max_ms),
            MIN(ts),
            MAX(ts)
        FROM cycles
    `

	var s Summary
	var first, last sql.NullString
	err := db.QueryRow(query).Scan(&s.Cycles, &s.LossyCycles, &s.AvgLoss, &s.MaxLoss,
		&s.AvgMean, &s.MinRTT, &s.MaxRTT, &first, &last)
	if err != nil {
		return s, err
	}

	if first.Valid {
		if s.First, err = time.ParseInLocation(tsLayout, first.String, time.Local); err != nil {
			return s, fmt.Errorf("parse first timestamp %q: %w", first.String, err)
		}
	}
	if last.Valid {
		if s.Last, err = time.ParseInLocation(tsLayout, last.String, time.Local); err != nil {
			return s, fmt.Errorf("parse last timestamp %q: %w", last.String, err)
		}
	}
	return s, nil
}

// GetHourlyStats aggregates cycles per clock hour, oldest first
func (db *DB) GetHourlyStats() ([]HourlyStat, error) {
	query := `
        SELECT
            hour,
            COUNT(*),
            AVG(packet_loss),
            MAX(packet_loss),
            AVG(mean_ms),
            MAX(max_ms)
        FROM cycles
        GROUP BY hour
        ORDER BY hour
    `

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []HourlyStat
	for rows.Next() {
		var h HourlyStat
		if err := rows.Scan(&h.Hour, &h.Cycles, &h.AvgLoss, &h.MaxLoss, &h.AvgMean, &h.MaxRTT); err != nil {
			return nil, fmt.Errorf("scan hourly stats: %w", err)
		}
		stats = append(stats, h)
	}

	return stats, rows.Err()
}

// GetCycles returns stored cycles in time order, only lossy ones when
// lossyOnly is set
func (db *DB) GetCycles(lossyOnly bool) ([]models.Record, error) {
	query := `
        SELECT ts, packet_loss, mean_ms, median_ms, min_ms, max_ms
        FROM cycles
        WHERE packet_loss > 0 OR ? = 0
        ORDER BY ts, id
    `

	rows, err := db.Query(query, lossyOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var ts string
		var mean, median, minRTT, maxRTT sql.NullFloat64
		if err := rows.Scan(&ts, &r.Stats.PacketLoss, &mean, &median, &minRTT, &maxRTT); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		r.Timestamp, err = time.ParseInLocation(tsLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse cycle timestamp %q: %w", ts, err)
		}
		r.Stats.Mean = fromNull(mean)
		r.Stats.Median = fromNull(median)
		r.Stats.Min = fromNull(minRTT)
		r.Stats.Max = fromNull(maxRTT)
		records = append(records, r)
	}

	return records, rows.Err()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
