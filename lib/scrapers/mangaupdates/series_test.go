package mangaupdates

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"muscraper/lib/telemetry"
	"muscraper/lib/timezone"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewSeriesRejectsNonPositiveIDs(t *testing.T) {
	for _, id := range []int{0, -1, -500} {
		_, err := NewSeries(nil, id)
		var invalid *InvalidIDError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, id, invalid.ID)
	}
}

func TestUnpopulatedSeries(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)

	_, err = s.Title()
	require.ErrorIs(t, err, ErrNotPopulated)
	_, err = s.Description()
	require.ErrorIs(t, err, ErrNotPopulated)
	_, err = s.Authors()
	require.ErrorIs(t, err, ErrNotPopulated)
	_, err = s.LatestReleases()
	require.ErrorIs(t, err, ErrNotPopulated)
	_, err = s.JSON(context.Background())
	require.ErrorIs(t, err, ErrNotPopulated)
}

func TestTentativeTitle(t *testing.T) {
	s, err := NewSeriesTitled(offlineClient(t), 33, "Tidal Ledger (provisional)")
	require.NoError(t, err)

	title, err := s.Title()
	require.NoError(t, err)
	require.Equal(t, "Tidal Ledger (provisional)", title)

	// the tentative name unlocks nothing else
	_, err = s.Description()
	require.ErrorIs(t, err, ErrNotPopulated)
}

func TestSeriesNotFound(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mangaupdates")
	defer cleanup()

	s, err := NewSeries(newTestClient(t), 424242)
	require.NoError(t, err)

	err = s.Populate(context.Background())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, 424242, notFound.ID)
}

func TestSeriesFields(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mangaupdates")
	defer cleanup()

	client := newTestClient(t)
	s, err := NewSeries(client, 33)
	require.NoError(t, err)
	require.NoError(t, s.Populate(context.Background()))

	title, err := s.Title()
	require.NoError(t, err)
	require.Equal(t, "Tidal Ledger", title)

	description, err := s.Description()
	require.NoError(t, err)
	require.Equal(t,
		"An accountant inherits a tide-bound ledger and starts balancing the debts the sea itself owes.",
		*description)

	seriesType, err := s.SeriesType()
	require.NoError(t, err)
	require.Equal(t, "Manga", seriesType)

	status, err := s.Status()
	require.NoError(t, err)
	require.Equal(t, "89 Chapters (Ongoing)", status)

	scanlated, err := s.CompletelyScanlated()
	require.NoError(t, err)
	require.Equal(t, boolPtr(false), scanlated)

	animeChapters, err := s.AnimeChapters()
	require.NoError(t, err)
	require.Nil(t, animeChapters)

	names, err := s.AssociatedNames()
	require.NoError(t, err)
	require.Equal(t, []string{"Shio no Choubo", "潮の帳簿"}, names)

	groups, err := s.GroupsScanlating()
	require.NoError(t, err)
	require.Equal(t, []Group{
		{Name: "Driftwood Scans", ID: intPtr(301)},
		{Name: "Harbor TL", ID: intPtr(302)},
	}, groups)

	genres, err := s.Genres()
	require.NoError(t, err)
	require.Equal(t, []string{"Drama", "Fantasy"}, genres)

	authors, err := s.Authors()
	require.NoError(t, err)
	require.Equal(t, []Author{{Name: "UMIBE Kazuho", ID: intPtr(40111)}}, authors)

	artists, err := s.Artists()
	require.NoError(t, err)
	require.Equal(t, []Author{{Name: "TANA Riku", ID: intPtr(40112)}}, artists)

	year, err := s.Year()
	require.NoError(t, err)
	require.Equal(t, strPtr("2019"), year)

	licensed, err := s.LicensedInEnglish()
	require.NoError(t, err)
	require.Equal(t, boolPtr(true), licensed)

	image, err := s.Image()
	require.NoError(t, err)
	require.Equal(t, strPtr("https://cdn.mangaupdates.com/image/i224001.jpg"), image)

	lastUpdated, err := s.LastUpdated()
	require.NoError(t, err)
	require.True(t, lastUpdated.Equal(
		time.Date(2024, 3, 3, 7, 5, 0, 0, timezone.Location)))

	reviews, err := s.UserReviews()
	require.NoError(t, err)
	require.Equal(t, []UserReview{
		{ID: 501, Reviewer: "mariner_9", Name: "Salt and balance"},
	}, reviews)

	forum, err := s.Forum()
	require.NoError(t, err)
	require.Equal(t, ForumStats{ID: 914, Topics: 4, Posts: 33}, forum)

	rating, err := s.UserRating()
	require.NoError(t, err)
	require.Equal(t, &UserRating{
		Average:         8.4,
		BayesianAverage: 8.12,
		Votes:           212,
		Distribution: map[string]string{
			"10": "80 (37.7%)",
			"9":  "60 (28.3%)",
		},
	}, rating)

	related, err := s.RelatedSeries()
	require.NoError(t, err)
	require.Equal(t, []RelatedSeries{
		{
			Series:   SeriesRef{ID: 77, Title: "Tidal Ledger: Ebb"},
			Relation: strPtr("Sequel"),
		},
	}, related)

	categories, err := s.Categories()
	require.NoError(t, err)
	require.Equal(t, []Category{
		{Name: "Accounting", Score: 15, Agree: 16, Disagree: 1},
		{Name: "Slow Burn", Score: -3, Agree: 5, Disagree: 8},
	}, categories)

	categoryRecs, err := s.CategoryRecommendations()
	require.NoError(t, err)
	require.Equal(t, []SeriesRef{
		{ID: 2101, Title: "Harbor Lights"},
		{ID: 2102, Title: "Ledger of Leaves"},
	}, categoryRecs)

	publisher, err := s.OriginalPublisher()
	require.NoError(t, err)
	require.Equal(t, &Publisher{Name: "Shiosha", ID: intPtr(618)}, publisher)

	magazines, err := s.SerializedIn()
	require.NoError(t, err)
	require.Equal(t, []Magazine{
		{
			Name:   "Gekkan Shio",
			URL:    client.BaseURL() + "/magazines.html?id=1204",
			Parent: strPtr("Shiosha"),
		},
	}, magazines)

	english, err := s.EnglishPublisher()
	require.NoError(t, err)
	require.Equal(t, []Publisher{
		{Name: "Seaside Press", ID: intPtr(731), Note: strPtr("12 Vols - Ongoing")},
	}, english)

	listStats, err := s.ListStats()
	require.NoError(t, err)
	require.Equal(t, SeriesListStats{
		ID:              33,
		ReadingTotal:    911,
		WishTotal:       340,
		UnfinishedTotal: 57,
		CustomTotal:     122,
	}, listStats)
}

func TestSeriesActivityStats(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(loadDocument(t, "series_33.html")))

	stats, err := s.ActivityStats()
	require.NoError(t, err)
	require.Equal(t, ActivityStats{
		Weekly:     &Rank{Position: 402, Change: 25},
		Monthly:    &Rank{Position: 387, Change: -4},
		Quarterly:  &Rank{Position: 410},
		Semiannual: &Rank{Position: 398, Change: 12},
		Yearly:     &Rank{Position: 455, Change: 2},
	}, stats)
}

func TestSeriesLatestReleases(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(loadDocument(t, "series_33.html")))

	releases, err := s.LatestReleases()
	require.NoError(t, err)
	require.Equal(t, []Release{
		{
			SeriesID: 33,
			Volume:   strPtr("12"),
			Chapter:  strPtr("89"),
			Groups:   []Group{{Name: "Driftwood Scans", ID: intPtr(301)}},
			Elapsed:  strPtr("5 days ago"),
		},
		{
			SeriesID: 33,
			Chapter:  strPtr("88"),
			Groups:   []Group{{Name: "Harbor TL"}},
			Elapsed:  strPtr("12 days ago"),
		},
	}, releases)

	// sequences re-derive from the cached section, reading twice gives
	// the same rows
	again, err := s.LatestReleases()
	require.NoError(t, err)
	require.Equal(t, releases, again)
}

func TestSeriesRecommendations(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(loadDocument(t, "series_33.html")))

	recommendations, err := s.Recommendations()
	require.NoError(t, err)
	require.Equal(t, []RecommendedSeries{
		{Series: SeriesRef{ID: 3101, Title: "Night Audit"}, Level: intPtr(104)},
		{Series: SeriesRef{ID: 3102, Title: "Paper Tides"}, Level: intPtr(52)},
		{Series: SeriesRef{ID: 3103, Title: "The Quiet Ledger"}, Level: intPtr(0)},
	}, recommendations)
}

func TestSeriesSentinels(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 77)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(loadDocument(t, "series_77.html")))

	description, err := s.Description()
	require.NoError(t, err)
	require.Nil(t, description)

	rating, err := s.UserRating()
	require.NoError(t, err)
	require.Nil(t, rating)

	lastUpdated, err := s.LastUpdated()
	require.NoError(t, err)
	require.Nil(t, lastUpdated)

	licensed, err := s.LicensedInEnglish()
	require.NoError(t, err)
	require.Nil(t, licensed)

	year, err := s.Year()
	require.NoError(t, err)
	require.Equal(t, strPtr("2015-2019"), year)

	// an unregistered publisher is plain text next to the [Add] anchor
	publisher, err := s.OriginalPublisher()
	require.NoError(t, err)
	require.Equal(t, &Publisher{Name: "Shiosha"}, publisher)
}

func TestRepopulateDropsCache(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)

	require.NoError(t, s.populateDocument(loadDocument(t, "series_33.html")))
	title, err := s.Title()
	require.NoError(t, err)
	require.Equal(t, "Tidal Ledger", title)
	year, err := s.Year()
	require.NoError(t, err)
	require.Equal(t, strPtr("2019"), year)

	require.NoError(t, s.populateDocument(loadDocument(t, "series_77.html")))
	title, err = s.Title()
	require.NoError(t, err)
	require.Equal(t, "Tidal Ledger: Ebb", title)
	year, err = s.Year()
	require.NoError(t, err)
	require.Equal(t, strPtr("2015-2019"), year)
}

func TestUserRatingPatternError(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(parseDocument(t, `
		<div id="main_content">
		<div class="sCat"><b>User Rating</b></div>
		<div class="sContent">Average: soon</div>
		</div>
	`)))

	_, err = s.UserRating()
	var pattern *PatternError
	require.ErrorAs(t, err, &pattern)
	require.Equal(t, "Average: soon", pattern.Input)

	// pattern errors are parse errors too
	var parse *ParseError
	require.ErrorAs(t, err, &parse)
}

func TestSectionIndex(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(loadDocument(t, "series_33.html")))

	labels := []string{
		sectionDescription, sectionType, sectionRelatedSeries,
		sectionAssociatedNames, sectionGroups, sectionLatestReleases,
		sectionStatus, sectionScanlated, sectionAnimeChapters,
		sectionUserReviews, sectionForum, sectionUserRating,
		sectionLastUpdated, sectionImage, sectionGenre,
		sectionCategories, sectionCategoryRecs, sectionRecommendations,
		sectionAuthors, sectionArtists, sectionYear,
		sectionOriginalPublisher, sectionSerializedIn, sectionLicensed,
		sectionEnglishPublisher, sectionActivityStats, sectionListStats,
	}
	require.Len(t, s.sections, len(labels))
	for _, label := range labels {
		require.Contains(t, s.sections, label)
	}
}

func TestMissingSectionIsParseError(t *testing.T) {
	s, err := NewSeries(offlineClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.populateDocument(parseDocument(t, `
		<div id="main_content"></div>
	`)))

	_, err = s.Forum()
	var parse *ParseError
	require.ErrorAs(t, err, &parse)
	require.Equal(t, sectionForum, parse.Field)
	require.False(t, errors.Is(err, ErrNotPopulated))
}

func TestSeriesJSON(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mangaupdates")
	defer cleanup()

	s, err := NewSeries(newTestClient(t), 33)
	require.NoError(t, err)
	require.NoError(t, s.Populate(context.Background()))

	encoded, err := s.JSON(context.Background())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &out))

	require.Equal(t, float64(33), out["id"])
	require.Equal(t, "Tidal Ledger", out["title"])
	require.Equal(t, "Manga", out["series_type"])
	require.Equal(t, false, out["completely_scanlated"])
	require.Nil(t, out["anime_chapters"])
	require.Equal(t, "2019", out["year"])

	lastUpdated, err := time.Parse(time.RFC3339, out["last_updated"].(string))
	require.NoError(t, err)
	require.True(t, lastUpdated.Equal(
		time.Date(2024, 3, 3, 7, 5, 0, 0, timezone.Location)))

	forum := out["forum"].(map[string]any)
	require.Equal(t, float64(914), forum["id"])

	releases := out["latest_releases"].([]any)
	require.Len(t, releases, 2)
	// elapsed-time notes stay out of the export
	require.NotContains(t, releases[0].(map[string]any), "elapsed")

	stats := out["activity_stats"].(map[string]any)
	weekly := stats["weekly"].(map[string]any)
	require.Equal(t, float64(402), weekly["position"])
	require.Equal(t, float64(25), weekly["change"])

	recommendations := out["recommendations"].([]any)
	first := recommendations[0].(map[string]any)
	require.Equal(t, float64(3101), first["id"])
	require.Equal(t, float64(104), first["level"])
}
