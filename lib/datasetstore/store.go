// Package datasetstore persists scraped list-membership rows in sqlite
// so interrupted dataset runs can resume without refetching.
package datasetstore

import (
	"context"
	"database/sql"

	"muscraper/lib/scrapers/mangaupdates"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Push writes one series' rows for one list in a single transaction.
// Re-pushed rows replace their earlier versions, a resumed run may
// refetch its last unfinished series.
func (s Store) Push(ctx context.Context, list string, entries []mangaupdates.ListEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		var rating sql.NullFloat64
		if entry.Rating != nil {
			rating = sql.NullFloat64{Float64: *entry.Rating, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO list_entry (series_id, list_name, user_id, username, rating)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (series_id, list_name, user_id)
DO UPDATE SET username = excluded.username, rating = excluded.rating
		`, entry.SeriesID, list, entry.UserID, entry.Username, rating)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// HasSeries reports whether any rows were stored for the series/list
// pair, used to skip already-processed ids on resume.
func (s Store) HasSeries(ctx context.Context, seriesID int, list string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM list_entry WHERE series_id = ? AND list_name = ?
	`, seriesID, list)
	count := 0
	err := row.Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Entries reads back the stored rows for one series/list pair, ordered
// by user id.
func (s Store) Entries(ctx context.Context, seriesID int, list string) ([]mangaupdates.ListEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT user_id, username, rating FROM list_entry
WHERE series_id = ? AND list_name = ?
ORDER BY user_id
	`, seriesID, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []mangaupdates.ListEntry
	for rows.Next() {
		entry := mangaupdates.ListEntry{SeriesID: seriesID}
		var rating sql.NullFloat64
		err := rows.Scan(&entry.UserID, &entry.Username, &rating)
		if err != nil {
			return nil, err
		}
		if rating.Valid {
			value := rating.Float64
			entry.Rating = &value
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
