package database

import (
	"time"
)

// Prune deletes cycles recorded before cutoff so that reports cover a window
func (db *DB) Prune(cutoff time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM cycles WHERE ts < ?`, cutoff.Format(tsLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
