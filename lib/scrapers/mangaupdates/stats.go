package mangaupdates

import (
	"regexp"
	"strconv"
	"strings"

	"muscraper/lib/htmlutil"
	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	forumRegex   = regexp.MustCompile(`(?i)(\d+) topics, (\d+) posts`)
	averageRegex = regexp.MustCompile(`(?i)Average: (\d+\.?\d*)`)
	votesRegex   = regexp.MustCompile(`(?i)(\d+) votes`)
	floatRegex   = regexp.MustCompile(`\d+\.?\d*`)
	// category agreement can go net negative, the score is signed
	scoreRegex = regexp.MustCompile(`(?i)Score: (-?\d+) \((\d+),(\d+)\)`)
)

// Forum reads the topic/post counts and the forum id from the section's
// discussion link.
func (s *Series) Forum() (ForumStats, error) {
	if s.cache.forum.set {
		return s.cache.forum.value, nil
	}
	content, err := s.section(sectionForum)
	if err != nil {
		return ForumStats{}, err
	}
	lines := strippedStrings(content)
	if len(lines) == 0 {
		return ForumStats{}, &ParseError{Field: sectionForum}
	}
	match := forumRegex.FindStringSubmatch(lines[0])
	if match == nil {
		return ForumStats{}, &PatternError{
			Field:   sectionForum,
			Pattern: forumRegex.String(),
			Input:   lines[0],
		}
	}
	topics, _ := strconv.Atoi(match[1])
	posts, _ := strconv.Atoi(match[2])

	anchor := content.Find("a[href]").First()
	if anchor.Length() == 0 {
		return ForumStats{}, &ParseError{Field: "Forum (fid)"}
	}
	params := urlutil.QueryParams(htmlutil.Attr(anchor.Nodes[0], "href"))
	id, err := strconv.Atoi(params.Get("fid"))
	if err != nil {
		return ForumStats{}, &ParseError{Field: "Forum (fid)"}
	}
	return s.cache.forum.put(ForumStats{ID: id, Topics: topics, Posts: posts}), nil
}

// UserRating assembles the average, bayesian average, vote count and
// the vote histogram. Nil when the whole section reads N/A.
func (s *Series) UserRating() (*UserRating, error) {
	if s.cache.userRating.set {
		return s.cache.userRating.value, nil
	}
	content, err := s.section(sectionUserRating)
	if err != nil {
		return nil, err
	}
	lines := strippedStrings(content)
	if len(lines) == 0 || lines[0] == absentMarker {
		return s.cache.userRating.put(nil), nil
	}

	match := averageRegex.FindStringSubmatch(lines[0])
	if match == nil {
		return nil, &PatternError{
			Field:   "User Rating (Average)",
			Pattern: averageRegex.String(),
			Input:   lines[0],
		}
	}
	average, _ := strconv.ParseFloat(match[1], 64)

	span := content.Find("span").First()
	if span.Length() == 0 {
		return nil, &ParseError{Field: "User Rating (Votes)"}
	}
	votesText := htmlutil.NextSiblingText(span.Nodes[0])
	match = votesRegex.FindStringSubmatch(votesText)
	if match == nil {
		return nil, &PatternError{
			Field:   "User Rating (Votes)",
			Pattern: votesRegex.String(),
			Input:   votesText,
		}
	}
	votes, _ := strconv.Atoi(match[1])

	bold := content.Find("b").First()
	if bold.Length() == 0 {
		return nil, &ParseError{Field: "User Rating (Bayesian Average)"}
	}
	boldText := strings.TrimSpace(bold.Text())
	bayesianText := floatRegex.FindString(boldText)
	if bayesianText == "" {
		return nil, &PatternError{
			Field:   "User Rating (Bayesian Average)",
			Pattern: floatRegex.String(),
			Input:   boldText,
		}
	}
	bayesian, _ := strconv.ParseFloat(bayesianText, 64)

	distribution := map[string]string{}
	content.Find("div.row.no-gutters").Each(func(_ int, bin *goquery.Selection) {
		key := strings.TrimSpace(bin.ChildrenFiltered("div").First().Text())
		values := strippedStrings(bin.Find("div.text-right"))
		if key == "" || len(values) == 0 {
			return
		}
		distribution[key] = values[0]
	})

	return s.cache.userRating.put(&UserRating{
		Average:         average,
		BayesianAverage: bayesian,
		Votes:           votes,
		Distribution:    distribution,
	}), nil
}

// Categories reads the tag list; each tag's title attribute carries its
// signed score and the agree/disagree tallies.
func (s *Series) Categories() ([]Category, error) {
	content, err := s.section(sectionCategories)
	if err != nil {
		return nil, err
	}
	var categories []Category
	for _, n := range content.Find("li > a[title]").Nodes {
		title := htmlutil.Attr(n, "title")
		match := scoreRegex.FindStringSubmatch(title)
		if match == nil {
			return nil, &PatternError{
				Field:   sectionCategories,
				Pattern: scoreRegex.String(),
				Input:   title,
			}
		}
		score, _ := strconv.Atoi(match[1])
		agree, _ := strconv.Atoi(match[2])
		disagree, _ := strconv.Atoi(match[3])
		categories = append(categories, Category{
			Name:     textutil.CleanFragment(htmlutil.GetText(n)),
			Score:    score,
			Agree:    agree,
			Disagree: disagree,
		})
	}
	return categories, nil
}

// CategoryRecommendations are the "users who liked this also liked"
// entries derived from shared categories.
func (s *Series) CategoryRecommendations() ([]SeriesRef, error) {
	content, err := s.section(sectionCategoryRecs)
	if err != nil {
		return nil, err
	}
	var refs []SeriesRef
	for _, n := range content.Find("a[href]").Nodes {
		href := htmlutil.Attr(n, "href")
		if strings.HasPrefix(href, "javascript") {
			continue
		}
		id, ok := urlutil.ID(href)
		if !ok {
			return nil, &ParseError{Field: "Category Recommendations (Series ID)"}
		}
		refs = append(refs, SeriesRef{
			ID:    id,
			Title: textutil.CleanFragment(htmlutil.GetText(n)),
		})
	}
	return refs, nil
}

// nextIntervalSibling finds the next sibling element with the given tag
// without crossing into the following interval's anchor.
func nextIntervalSibling(node *html.Node, name string) *html.Node {
	for sibling := node.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type != html.ElementNode {
			continue
		}
		if sibling.Data == "a" {
			return nil
		}
		if sibling.Data == name {
			return sibling
		}
	}
	return nil
}

// ActivityStats reads the per-interval visit ranks. Each interval is an
// anchor followed by its bold position and, when the rank moved, an
// arrow image whose trailing text is the signed change.
func (s *Series) ActivityStats() (ActivityStats, error) {
	if s.cache.activityStats.set {
		return s.cache.activityStats.value, nil
	}
	content, err := s.section(sectionActivityStats)
	if err != nil {
		return ActivityStats{}, err
	}
	var stats ActivityStats
	for _, n := range content.Find("a").Nodes {
		interval := strings.TrimSpace(htmlutil.GetText(n))

		bold := nextIntervalSibling(n, "b")
		if bold == nil {
			return ActivityStats{}, &ParseError{Field: "Activity Stats (Position)"}
		}
		position, err := strconv.Atoi(strings.TrimSpace(htmlutil.GetText(bold)))
		if err != nil {
			return ActivityStats{}, &ParseError{Field: "Activity Stats (Position)"}
		}

		change := 0
		if img := nextIntervalSibling(n, "img"); img != nil {
			changeText := textutil.StripOuterParens(htmlutil.NextSiblingText(img))
			change, err = strconv.Atoi(changeText)
			if err != nil {
				return ActivityStats{}, &ParseError{Field: "Activity Stats (Change)"}
			}
		}

		rank := &Rank{Position: position, Change: change}
		switch interval {
		case "Weekly":
			stats.Weekly = rank
		case "Monthly":
			stats.Monthly = rank
		case "3 Month":
			stats.Quarterly = rank
		case "6 Month":
			stats.Semiannual = rank
		case "Year":
			stats.Yearly = rank
		default:
			return ActivityStats{}, &ParseError{Field: "Activity Stats (Interval)"}
		}
	}
	return s.cache.activityStats.put(stats), nil
}

// ListStats reads the membership totals shown on the info page, one
// bold count per list kind.
func (s *Series) ListStats() (SeriesListStats, error) {
	if s.cache.listStats.set {
		return s.cache.listStats.value, nil
	}
	content, err := s.section(sectionListStats)
	if err != nil {
		return SeriesListStats{}, err
	}
	stats := SeriesListStats{ID: s.id}
	for _, n := range content.Find("b").Nodes {
		total, err := strconv.Atoi(strings.TrimSpace(htmlutil.GetText(n)))
		if err != nil {
			return SeriesListStats{}, &ParseError{Field: "List Stats (Total)"}
		}
		name := strings.TrimSuffix(htmlutil.NextSiblingText(n), " lists")
		switch name {
		case "reading":
			stats.ReadingTotal = total
		case "wish":
			stats.WishTotal = total
		case "unfinished":
			stats.UnfinishedTotal = total
		case "custom":
			stats.CustomTotal = total
		default:
			return SeriesListStats{}, &ParseError{Field: "List Stats (List Name)"}
		}
	}
	return s.cache.listStats.put(stats), nil
}
