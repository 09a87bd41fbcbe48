package datasetstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"muscraper/lib/scrapers/mangaupdates"
	"muscraper/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func floatPtr(v float64) *float64 { return &v }

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:datasetstore")
	defer cleanup()

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(Schema)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		done, err := store.HasSeries(ctx, 33, "read")
		require.NoError(t, err)
		require.False(t, done)
	}
	{
		err := store.Push(ctx, "read", []mangaupdates.ListEntry{
			{SeriesID: 33, UserID: 10334, Username: "brineblot", Rating: floatPtr(9.0)},
			{SeriesID: 33, UserID: 10455, Username: "ledgerfan"},
		})
		require.NoError(t, err)
	}
	{
		done, err := store.HasSeries(ctx, 33, "read")
		require.NoError(t, err)
		require.True(t, done)

		done, err = store.HasSeries(ctx, 33, "wish")
		require.NoError(t, err)
		require.False(t, done)
	}
	{
		// re-pushing overwrites instead of duplicating
		err := store.Push(ctx, "read", []mangaupdates.ListEntry{
			{SeriesID: 33, UserID: 10334, Username: "brineblot", Rating: floatPtr(8.0)},
		})
		require.NoError(t, err)

		entries, err := store.Entries(ctx, 33, "read")
		require.NoError(t, err)
		require.Equal(t, []mangaupdates.ListEntry{
			{SeriesID: 33, UserID: 10334, Username: "brineblot", Rating: floatPtr(8.0)},
			{SeriesID: 33, UserID: 10455, Username: "ledgerfan"},
		}, entries)
	}
}
