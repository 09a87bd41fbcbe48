package mangaupdates

import (
	"context"
	"testing"

	"muscraper/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMostListed(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mangaupdates")
	defer cleanup()

	entries, err := MostListed(context.Background(), newTestClient(t), MostListedOptions{
		Lists:    []string{"read"},
		MinUsers: 10,
	})
	require.NoError(t, err)
	expected := []TopListEntry{
		{SeriesID: 33, Title: "Tidal Ledger", List: "read", NumUsers: 911},
		{SeriesID: 77, Title: "Tidal Ledger: Ebb", List: "read", NumUsers: 640},
		{SeriesID: 99, Title: "Driftwood Diary", List: "read", NumUsers: 38},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf("unexpected ranking rows:\n%s", diff)
	}
}

func TestMostListedPageCap(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mangaupdates")
	defer cleanup()

	entries, err := MostListed(context.Background(), newTestClient(t), MostListedOptions{
		Lists:    []string{"read"},
		MaxPages: 1,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
