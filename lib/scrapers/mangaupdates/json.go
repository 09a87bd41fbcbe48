package mangaupdates

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/codes"
)

type relatedSeriesJSON struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Relation *string `json:"relation"`
}

type recommendationJSON struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Level *int   `json:"level"`
}

type seriesJSON struct {
	ID                      int                  `json:"id"`
	Title                   string               `json:"title"`
	Description             *string              `json:"description"`
	SeriesType              string               `json:"series_type"`
	AssociatedNames         []string             `json:"associated_names"`
	GroupsScanlating        []Group              `json:"groups_scanlating"`
	Status                  string               `json:"status"`
	CompletelyScanlated     *bool                `json:"completely_scanlated"`
	AnimeChapters           []string             `json:"anime_chapters"`
	UserReviews             []UserReview         `json:"user_reviews"`
	Forum                   ForumStats           `json:"forum"`
	UserRating              *UserRating          `json:"user_rating"`
	LastUpdated             *string              `json:"last_updated"`
	Image                   *string              `json:"image"`
	Genres                  []string             `json:"genres"`
	Categories              []Category           `json:"categories"`
	Authors                 []Author             `json:"authors"`
	Artists                 []Author             `json:"artists"`
	Year                    *string              `json:"year"`
	OriginalPublisher       *Publisher           `json:"original_publisher"`
	SerializedIn            []Magazine           `json:"serialized_in"`
	LicensedInEnglish       *bool                `json:"licensed_in_english"`
	EnglishPublisher        []Publisher          `json:"english_publisher"`
	RelatedSeries           []relatedSeriesJSON  `json:"related_series"`
	CategoryRecommendations []SeriesRef          `json:"category_recommendations"`
	Recommendations         []recommendationJSON `json:"recommendations"`
	LatestReleases          []Release            `json:"latest_releases"`
	ActivityStats           ActivityStats        `json:"activity_stats"`
	ListStats               SeriesListStats      `json:"list_stats"`
}

// JSON renders every field of the populated series as one JSON object.
// Timestamps come out as RFC 3339. Any field parser failure aborts the
// whole export, partially parsed entities are never emitted.
func (s *Series) JSON(ctx context.Context) (string, error) {
	_, span := tracer.Start(ctx, "series:JSON")
	defer span.End()

	out, err := s.exportJSON()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to export series")
		return "", err
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal series")
		return "", err
	}
	return string(encoded), nil
}

func (s *Series) exportJSON() (*seriesJSON, error) {
	out := &seriesJSON{ID: s.id}

	var err error
	if out.Title, err = s.Title(); err != nil {
		return nil, err
	}
	if out.Description, err = s.Description(); err != nil {
		return nil, err
	}
	if out.SeriesType, err = s.SeriesType(); err != nil {
		return nil, err
	}
	if out.AssociatedNames, err = s.AssociatedNames(); err != nil {
		return nil, err
	}
	if out.GroupsScanlating, err = s.GroupsScanlating(); err != nil {
		return nil, err
	}
	if out.Status, err = s.Status(); err != nil {
		return nil, err
	}
	if out.CompletelyScanlated, err = s.CompletelyScanlated(); err != nil {
		return nil, err
	}
	if out.AnimeChapters, err = s.AnimeChapters(); err != nil {
		return nil, err
	}
	if out.UserReviews, err = s.UserReviews(); err != nil {
		return nil, err
	}
	if out.Forum, err = s.Forum(); err != nil {
		return nil, err
	}
	if out.UserRating, err = s.UserRating(); err != nil {
		return nil, err
	}
	lastUpdated, err := s.LastUpdated()
	if err != nil {
		return nil, err
	}
	if lastUpdated != nil {
		formatted := lastUpdated.Format(time.RFC3339)
		out.LastUpdated = &formatted
	}
	if out.Image, err = s.Image(); err != nil {
		return nil, err
	}
	if out.Genres, err = s.Genres(); err != nil {
		return nil, err
	}
	if out.Categories, err = s.Categories(); err != nil {
		return nil, err
	}
	if out.Authors, err = s.Authors(); err != nil {
		return nil, err
	}
	if out.Artists, err = s.Artists(); err != nil {
		return nil, err
	}
	if out.Year, err = s.Year(); err != nil {
		return nil, err
	}
	if out.OriginalPublisher, err = s.OriginalPublisher(); err != nil {
		return nil, err
	}
	if out.SerializedIn, err = s.SerializedIn(); err != nil {
		return nil, err
	}
	if out.LicensedInEnglish, err = s.LicensedInEnglish(); err != nil {
		return nil, err
	}
	if out.EnglishPublisher, err = s.EnglishPublisher(); err != nil {
		return nil, err
	}
	related, err := s.RelatedSeries()
	if err != nil {
		return nil, err
	}
	for _, r := range related {
		out.RelatedSeries = append(out.RelatedSeries, relatedSeriesJSON{
			ID:       r.Series.ID,
			Title:    r.Series.Title,
			Relation: r.Relation,
		})
	}
	if out.CategoryRecommendations, err = s.CategoryRecommendations(); err != nil {
		return nil, err
	}
	recommendations, err := s.Recommendations()
	if err != nil {
		return nil, err
	}
	for _, r := range recommendations {
		out.Recommendations = append(out.Recommendations, recommendationJSON{
			ID:    r.Series.ID,
			Title: r.Series.Title,
			Level: r.Level,
		})
	}
	if out.LatestReleases, err = s.LatestReleases(); err != nil {
		return nil, err
	}
	if out.ActivityStats, err = s.ActivityStats(); err != nil {
		return nil, err
	}
	if out.ListStats, err = s.ListStats(); err != nil {
		return nil, err
	}
	return out, nil
}

type listEntryJSON struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// JSON renders the fetched lists as one object: the series id plus one
// entry array per fetched list name. Per-user ratings are kept out of
// this export, its historical shape only carries user ids and names;
// read them through Entries when you need them.
func (l *MembershipLists) JSON() (string, error) {
	if len(l.pages) == 0 {
		return "", ErrNotPopulated
	}
	out := map[string]any{"series_id": l.id}
	for name := range l.pages {
		entries, err := l.Entries(name)
		if err != nil {
			return "", err
		}
		rows := []listEntryJSON{}
		for _, entry := range entries {
			rows = append(rows, listEntryJSON{
				UserID:   entry.UserID,
				Username: entry.Username,
			})
		}
		out[name] = rows
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
