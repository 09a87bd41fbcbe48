package mangaupdates

import (
	"regexp"
	"strconv"
	"strings"

	"muscraper/lib/htmlutil"
	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"

	"golang.org/x/net/html"
)

var backgroundColorRegex = regexp.MustCompile(`background-color:\s*#([0-9a-fA-F]{6})`)

// colorSum decodes a row's background shade into the sum of its RGB
// channels. It checks the inline style first and falls back to the
// legacy bgcolor attribute.
func colorSum(node *html.Node) (int, bool) {
	hex := ""
	if match := backgroundColorRegex.FindStringSubmatch(htmlutil.Attr(node, "style")); match != nil {
		hex = match[1]
	} else if bg := strings.TrimPrefix(htmlutil.Attr(node, "bgcolor"), "#"); len(bg) == 6 {
		hex = bg
	}
	if hex == "" {
		return 0, false
	}
	sum := 0
	for i := 0; i < 6; i += 2 {
		channel, err := strconv.ParseInt(hex[i:i+2], 16, 32)
		if err != nil {
			return 0, false
		}
		sum += int(channel)
	}
	return sum, true
}

func rowColorSum(node, stop *html.Node) (int, bool) {
	for parent := node.Parent; parent != nil && parent != stop; parent = parent.Parent {
		if sum, ok := colorSum(parent); ok {
			return sum, true
		}
	}
	return 0, false
}

// Recommendations reads the complete list hidden behind the section's
// "More..." toggle; the truncated prefix before the toggle duplicates
// it and is skipped. The site shades each row by recommendation
// strength, lightening toward the last row: the level is the row's
// distance from that baseline shade, nil when a shade cannot be
// decoded.
func (s *Series) Recommendations() ([]RecommendedSeries, error) {
	content, err := s.section(sectionRecommendations)
	if err != nil {
		return nil, err
	}

	type row struct {
		ref  SeriesRef
		sum  int
		seen bool
	}
	var rows []row
	sectionNode := content.Nodes[0]
	seenMore := false
	for _, n := range content.Find("a[href]").Nodes {
		href := htmlutil.Attr(n, "href")
		if !seenMore {
			if strings.HasPrefix(href, "javascript") &&
				strings.TrimSpace(htmlutil.GetText(n)) == "More..." {
				seenMore = true
			}
			continue
		}
		if strings.HasPrefix(href, "javascript") {
			// the trailing "Less..." toggle
			continue
		}
		id, ok := urlutil.ID(href)
		if !ok {
			return nil, &ParseError{Field: "Recommendations (Series ID)"}
		}
		sum, seen := rowColorSum(n, sectionNode)
		rows = append(rows, row{
			ref: SeriesRef{
				ID:    id,
				Title: textutil.CleanFragment(htmlutil.GetText(n)),
			},
			sum:  sum,
			seen: seen,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	baseline, haveBaseline := 0, false
	if last := rows[len(rows)-1]; last.seen {
		baseline, haveBaseline = last.sum, true
	}

	recommendations := make([]RecommendedSeries, 0, len(rows))
	for _, r := range rows {
		entry := RecommendedSeries{Series: r.ref}
		if haveBaseline && r.seen {
			level := baseline - r.sum
			entry.Level = &level
		}
		recommendations = append(recommendations, entry)
	}
	return recommendations, nil
}
