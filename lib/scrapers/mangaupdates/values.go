package mangaupdates

// SeriesRef is a lightweight reference to another series: just the id
// and the display name the referring page used. Never an eagerly
// populated Series, otherwise following relations would fetch the whole
// catalog transitively.
type SeriesRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type Group struct {
	Name string `json:"name"`
	ID   *int   `json:"id"`
}

type RelatedSeries struct {
	Series   SeriesRef `json:"series"`
	Relation *string   `json:"relation"`
}

// Release is one row of the "Latest Release(s)" block. Volume and
// chapter stay text: the site puts ranges and suffixes in both
// ("10-12", "176.5").
type Release struct {
	SeriesID int     `json:"id"`
	Volume   *string `json:"volume"`
	Chapter  *string `json:"chapter"`
	Groups   []Group `json:"groups"`
	Elapsed  *string `json:"-"`
}

type UserReview struct {
	ID       int    `json:"id"`
	Reviewer string `json:"reviewer"`
	Name     string `json:"name"`
}

type ForumStats struct {
	ID     int `json:"id"`
	Topics int `json:"topics"`
	Posts  int `json:"posts"`
}

// UserRating is absent as a whole (nil) when the page shows no rating.
// Distribution keys are the histogram bucket labels ("10", "9", ...) and
// the values are kept verbatim ("120 (7.2%)").
type UserRating struct {
	Average         float64           `json:"average"`
	BayesianAverage float64           `json:"bayesian_average"`
	Votes           int               `json:"votes"`
	Distribution    map[string]string `json:"distribution"`
}

// Category score is signed: the site allows net-negative agreement.
type Category struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Agree    int    `json:"agree"`
	Disagree int    `json:"disagree"`
}

// Author doubles as the artist record, the site renders both sections
// identically.
type Author struct {
	Name string `json:"name"`
	ID   *int   `json:"id"`
}

type Publisher struct {
	Name string  `json:"name"`
	ID   *int    `json:"id"`
	Note *string `json:"note"`
}

type Magazine struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Parent *string `json:"parent"`
}

type Rank struct {
	Position int `json:"position"`
	Change   int `json:"change"`
}

type ActivityStats struct {
	Weekly     *Rank `json:"weekly"`
	Monthly    *Rank `json:"monthly"`
	Quarterly  *Rank `json:"quarterly"`
	Semiannual *Rank `json:"semiannual"`
	Yearly     *Rank `json:"yearly"`
}

// RecommendedSeries carries the strength level the site encodes as row
// shading; nil when the row's color could not be decoded.
type RecommendedSeries struct {
	Series SeriesRef
	Level  *int
}

// SeriesListStats are the per-list membership totals shown on the series
// page itself (as opposed to the full per-user rows on the list pages).
type SeriesListStats struct {
	ID              int `json:"id"`
	ReadingTotal    int `json:"reading_total"`
	WishTotal       int `json:"wish_total"`
	UnfinishedTotal int `json:"unfinished_total"`
	CustomTotal     int `json:"custom_total"`
}

type ListEntry struct {
	SeriesID int
	UserID   int
	Username string
	Rating   *float64
}
