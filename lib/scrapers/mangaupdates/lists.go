package mangaupdates

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"muscraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

// DefaultLists are the membership lists fetched when Populate is called
// without an explicit selection.
var DefaultLists = []string{"read", "wish", "unfinished"}

// AllLists are every public list kind the site exposes.
var AllLists = []string{"read", "wish", "unfinished", "complete", "hold"}

// each row's anchor opens the user's profile through a javascript call;
// the user id only exists inside that envelope.
const (
	loadUserPrefix = `javascript:loadUser(`
	ratingMarker   = " - Rating: "
)

// MembershipLists fetches the per-user membership rows of one series,
// one page per list kind. Lists fetched by earlier Populate calls stay
// readable; re-requesting a list replaces its page.
type MembershipLists struct {
	client *Client
	id     int
	pages  map[string]*goquery.Document
}

func NewMembershipLists(client *Client, id int) (*MembershipLists, error) {
	if id <= 0 {
		return nil, &InvalidIDError{ID: id}
	}
	return &MembershipLists{
		client: client,
		id:     id,
		pages:  map[string]*goquery.Document{},
	}, nil
}

func (l *MembershipLists) ID() int {
	return l.id
}

// Lists names the list kinds fetched so far.
func (l *MembershipLists) Lists() []string {
	var names []string
	for name := range l.pages {
		names = append(names, name)
	}
	return names
}

// Populate fetches the given lists, or DefaultLists when none are
// named, pausing the client's courtesy delay between pages.
func (l *MembershipLists) Populate(ctx context.Context, lists ...string) error {
	ctx, span := tracer.Start(ctx, "lists:Populate")
	defer span.End()

	if len(lists) == 0 {
		lists = DefaultLists
	}
	for i, name := range lists {
		if i > 0 {
			if err := l.client.courtesyDelay(ctx); err != nil {
				return err
			}
		}
		page, err := l.client.ListPage(ctx, l.id, name)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("failed to fetch list %q", name))
			return err
		}
		l.pages[name] = page
	}
	return nil
}

// Entries parses the rows of one fetched list. The list must have been
// included in a successful Populate call first.
func (l *MembershipLists) Entries(list string) ([]ListEntry, error) {
	page, ok := l.pages[list]
	if !ok {
		return nil, ErrNotPopulated
	}

	// the rows live in the second paragraph, the first is the header;
	// a list nobody uses has no second paragraph at all
	rows := page.Find("p").First().NextAllFiltered("p").First()
	if rows.Length() == 0 {
		return nil, nil
	}

	suffix := fmt.Sprintf(`,"%s")`, list)
	var entries []ListEntry
	for _, n := range rows.ChildrenFiltered("a[href]").Nodes {
		href := htmlutil.Attr(n, "href")
		if !strings.HasPrefix(href, loadUserPrefix) || !strings.HasSuffix(href, suffix) {
			return nil, &ParseError{Field: "List (User ID)"}
		}
		uid, err := strconv.Atoi(href[len(loadUserPrefix) : len(href)-len(suffix)])
		if err != nil {
			return nil, &ParseError{Field: "List (User ID)"}
		}

		entry := ListEntry{
			SeriesID: l.id,
			UserID:   uid,
			Username: strings.TrimSpace(htmlutil.GetText(n)),
		}
		// the rating, when the user gave one, follows as a literal
		// " - Rating: " text node and a bold value
		sibling := n.NextSibling
		if sibling != nil && sibling.Type == html.TextNode && sibling.Data == ratingMarker {
			bold := htmlutil.NextSiblingElement(n, "b")
			if bold == nil {
				return nil, &ParseError{Field: "List (Rating)"}
			}
			rating, err := strconv.ParseFloat(strings.TrimSpace(htmlutil.GetText(bold)), 64)
			if err != nil {
				return nil, &ParseError{Field: "List (Rating)"}
			}
			entry.Rating = &rating
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
