package mangaupdates

import (
	"context"
	"strconv"
	"strings"

	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TopListEntry is one row of the sitewide "most listed" ranking: a
// series and how many users keep it on the given list.
type TopListEntry struct {
	SeriesID int    `json:"id"`
	Title    string `json:"title"`
	List     string `json:"list"`
	NumUsers int    `json:"num_users"`
}

type MostListedOptions struct {
	// defaults to AllLists
	Lists []string
	// walking a list stops once a row drops below this many users
	MinUsers int
	// rows per fetched page, defaults to 100
	PerPage int
	// hard cap on pages per list, 0 means unbounded
	MaxPages int
}

// MostListed walks the ranking pages of each list until the user counts
// fall below the threshold, pausing the client's courtesy delay between
// fetches.
func MostListed(ctx context.Context, client *Client, opts MostListedOptions) ([]TopListEntry, error) {
	ctx, span := tracer.Start(ctx, "MostListed")
	defer span.End()

	if len(opts.Lists) == 0 {
		opts.Lists = AllLists
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}

	var out []TopListEntry
	first := true
	for _, list := range opts.Lists {
		for page := 1; opts.MaxPages <= 0 || page <= opts.MaxPages; page++ {
			if !first {
				if err := client.courtesyDelay(ctx); err != nil {
					return out, err
				}
			}
			first = false

			doc, err := client.StatsPage(ctx, list, page, opts.PerPage)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to fetch stats page")
				return out, err
			}
			entries, err := parseStatsPage(doc, list)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to parse stats page")
				return out, err
			}
			if len(entries) == 0 {
				break
			}
			span.AddEvent("page", trace.WithAttributes(
				attribute.String("list", list),
				attribute.Int("page", page),
				attribute.Int("entries", len(entries)),
			))

			belowThreshold := false
			for _, entry := range entries {
				if entry.NumUsers < opts.MinUsers {
					belowThreshold = true
					break
				}
				out = append(out, entry)
			}
			if belowThreshold {
				break
			}
		}
	}
	return out, nil
}

// parseStatsPage reads the ranking grid: count cells (col-1) alternate
// with title cells (col-11), after two header cells.
func parseStatsPage(doc *goquery.Document, list string) ([]TopListEntry, error) {
	table := doc.Find("#main_content div.row.no-gutters").First()
	if table.Length() == 0 {
		return nil, &ParseError{Field: "Top Lists (Grid)"}
	}

	var entries []TopListEntry
	var parseErr error
	numUsers := 0
	haveCount := false
	table.ChildrenFiltered("div").Each(func(i int, cell *goquery.Selection) {
		if i < 2 || parseErr != nil {
			return
		}
		switch {
		case cell.HasClass("col-1"):
			n, err := strconv.Atoi(strings.TrimSpace(cell.Text()))
			if err != nil {
				parseErr = &ParseError{Field: "Top Lists (Num Users)"}
				return
			}
			numUsers = n
			haveCount = true
		case cell.HasClass("col-11"):
			if !haveCount {
				parseErr = &ParseError{Field: "Top Lists (Grid)"}
				return
			}
			anchor := cell.Find("a[href]").First()
			if anchor.Length() == 0 {
				parseErr = &ParseError{Field: "Top Lists (Series)"}
				return
			}
			href, _ := anchor.Attr("href")
			id, ok := urlutil.ID(href)
			if !ok {
				parseErr = &ParseError{Field: "Top Lists (Series ID)"}
				return
			}
			entries = append(entries, TopListEntry{
				SeriesID: id,
				Title:    textutil.CleanFragment(anchor.Text()),
				List:     list,
				NumUsers: numUsers,
			})
			haveCount = false
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}
