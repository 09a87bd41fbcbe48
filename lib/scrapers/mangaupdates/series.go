package mangaupdates

import (
	"context"
	"strings"
	"time"

	"muscraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

// the info page labels every block with a div.sCat whose bold text is
// the section name; the payload is the next div.sContent sibling. these
// are the labels a well-formed page always carries.
const (
	sectionDescription       = "Description"
	sectionType              = "Type"
	sectionRelatedSeries     = "Related Series"
	sectionAssociatedNames   = "Associated Names"
	sectionGroups            = "Groups Scanlating"
	sectionLatestReleases    = "Latest Release(s)"
	sectionStatus            = "Status"
	sectionScanlated         = "Completely Scanlated?"
	sectionAnimeChapters     = "Anime Start/End Chapter"
	sectionUserReviews       = "User Reviews"
	sectionForum             = "Forum"
	sectionUserRating        = "User Rating"
	sectionLastUpdated       = "Last Updated"
	sectionImage             = "Image"
	sectionGenre             = "Genre"
	sectionCategories        = "Categories"
	sectionCategoryRecs      = "Category Recommendations"
	sectionRecommendations   = "Recommendations"
	sectionAuthors           = "Author(s)"
	sectionArtists           = "Artist(s)"
	sectionYear              = "Year"
	sectionOriginalPublisher = "Original Publisher"
	sectionSerializedIn      = "Serialized In (magazine)"
	sectionLicensed          = "Licensed (in English)"
	sectionEnglishPublisher  = "English Publisher"
	sectionActivityStats     = "Activity Stats"
	sectionListStats         = "List Stats"
)

// the site renders "no value" as a literal N/A in most sections.
const absentMarker = "N/A"

type cached[T any] struct {
	set   bool
	value T
}

func (c *cached[T]) put(value T) T {
	c.set = true
	c.value = value
	return value
}

// seriesCache holds every scalar field that is parsed at most once per
// populated page. Populate replaces it wholesale, so a stale value can
// never outlive the page it was parsed from. Sequence accessors are not
// cached: they re-walk their section on every call.
type seriesCache struct {
	title               cached[string]
	description         cached[*string]
	seriesType          cached[string]
	status              cached[string]
	completelyScanlated cached[*bool]
	animeChapters       cached[[]string]
	forum               cached[ForumStats]
	userRating          cached[*UserRating]
	lastUpdated         cached[*time.Time]
	image               cached[*string]
	year                cached[*string]
	originalPublisher   cached[*Publisher]
	licensedInEnglish   cached[*bool]
	activityStats       cached[ActivityStats]
	listStats           cached[SeriesListStats]
}

// Series wraps one series info page. Construct it with NewSeries, call
// Populate to fetch the page, then read fields through the accessors.
// Accessors never fetch; before the first Populate they all return
// ErrNotPopulated.
type Series struct {
	client *Client
	id     int

	main     *goquery.Selection
	sections map[string]*goquery.Selection
	cache    seriesCache
}

func NewSeries(client *Client, id int) (*Series, error) {
	if id <= 0 {
		return nil, &InvalidIDError{ID: id}
	}
	return &Series{client: client, id: id}, nil
}

// NewSeriesTitled seeds the series with a title known ahead of time
// (e.g. from a listing page), so Title works before the first Populate.
// The parsed title replaces it once the page is fetched.
func NewSeriesTitled(client *Client, id int, title string) (*Series, error) {
	s, err := NewSeries(client, id)
	if err != nil {
		return nil, err
	}
	s.cache.title.put(title)
	return s, nil
}

func (s *Series) ID() int {
	return s.id
}

// Populate fetches the info page and resets every cached field. Calling
// it again refreshes the whole series from scratch.
func (s *Series) Populate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "series:Populate")
	defer span.End()

	doc, err := s.client.SeriesPage(ctx, s.id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch series page")
		return err
	}
	err = s.populateDocument(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to index series page")
		return err
	}
	return nil
}

func (s *Series) populateDocument(doc *goquery.Document) error {
	main := doc.Find("#main_content")
	if main.Length() == 0 {
		return &ParseError{Field: "main_content"}
	}
	s.main = main
	s.sections = collectSections(main)
	s.cache = seriesCache{}
	return nil
}

func collectSections(main *goquery.Selection) map[string]*goquery.Selection {
	sections := map[string]*goquery.Selection{}
	main.Find("div.sCat").Each(func(_ int, cat *goquery.Selection) {
		label := cat.Find("b").First()
		if label.Length() == 0 {
			return
		}
		key := htmlutil.FirstText(label.Nodes[0])
		if key == "" {
			return
		}
		content := cat.NextAllFiltered("div.sContent").First()
		if content.Length() == 0 {
			return
		}
		sections[key] = content
	})
	return sections
}

// section returns the payload selection for a label. A populated page
// missing one of the known labels is malformed, not merely empty: the
// site renders every section even when its value is N/A.
func (s *Series) section(label string) (*goquery.Selection, error) {
	if s.sections == nil {
		return nil, ErrNotPopulated
	}
	sel, ok := s.sections[label]
	if !ok {
		return nil, &ParseError{Field: label}
	}
	return sel, nil
}

func (s *Series) sectionText(label string) (string, error) {
	content, err := s.section(label)
	if err != nil {
		return "", err
	}
	return strings.Join(strippedStrings(content), " "), nil
}

// strippedStrings yields every non-empty trimmed text node under the
// selection, in document order.
func strippedStrings(sel *goquery.Selection) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				out = append(out, t)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}

// Title is read from the page header, not from a labeled section.
func (s *Series) Title() (string, error) {
	if s.cache.title.set {
		return s.cache.title.value, nil
	}
	if s.main == nil {
		return "", ErrNotPopulated
	}
	span := s.main.Find("span.releasestitle").First()
	if span.Length() == 0 {
		return "", &ParseError{Field: "Title"}
	}
	return s.cache.title.put(strings.TrimSpace(span.Text())), nil
}
