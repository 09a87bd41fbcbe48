package mangaupdates

import (
	"strings"

	"muscraper/lib/htmlutil"
	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"
)

// AssociatedNames are the alternate titles, one per text line of the
// section.
func (s *Series) AssociatedNames() ([]string, error) {
	content, err := s.section(sectionAssociatedNames)
	if err != nil {
		return nil, err
	}
	names := strippedStrings(content)
	if len(names) == 1 && names[0] == absentMarker {
		return nil, nil
	}
	return names, nil
}

// GroupsScanlating lists the groups credited on the info page. Groups
// the site links carry an id, plain-text credits do not. The
// javascript "More..."/"Less..." toggles are skipped.
func (s *Series) GroupsScanlating() ([]Group, error) {
	content, err := s.section(sectionGroups)
	if err != nil {
		return nil, err
	}
	var groups []Group
	for _, n := range content.Find("a[href]").Nodes {
		href := htmlutil.Attr(n, "href")
		if strings.HasPrefix(href, "javascript") {
			continue
		}
		group := Group{Name: textutil.CleanFragment(htmlutil.GetText(n))}
		if htmlutil.Attr(n, "title") == "Group Info" {
			if id, ok := urlutil.ID(href); ok {
				group.ID = &id
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Genres are rendered as underlined anchor text.
func (s *Series) Genres() ([]string, error) {
	content, err := s.section(sectionGenre)
	if err != nil {
		return nil, err
	}
	var genres []string
	for _, n := range content.Find("a > u").Nodes {
		name := textutil.CleanFragment(htmlutil.GetText(n))
		if name != "" {
			genres = append(genres, name)
		}
	}
	return genres, nil
}

func (s *Series) people(label string) ([]Author, error) {
	content, err := s.section(label)
	if err != nil {
		return nil, err
	}
	var out []Author
	for _, n := range content.Find("a[href]").Nodes {
		person := Author{Name: textutil.CleanFragment(htmlutil.GetText(n))}
		if id, ok := urlutil.ID(htmlutil.Attr(n, "href")); ok {
			person.ID = &id
		}
		out = append(out, person)
	}
	return out, nil
}

func (s *Series) Authors() ([]Author, error) {
	return s.people(sectionAuthors)
}

func (s *Series) Artists() ([]Author, error) {
	return s.people(sectionArtists)
}

// UserReviews yields one entry per linked review: the review id, the
// review title and the reviewer's name from the trailing "by ..." text.
func (s *Series) UserReviews() ([]UserReview, error) {
	content, err := s.section(sectionUserReviews)
	if err != nil {
		return nil, err
	}
	var reviews []UserReview
	for _, n := range content.Find("a[href]").Nodes {
		id, ok := urlutil.ID(htmlutil.Attr(n, "href"))
		if !ok {
			return nil, &ParseError{Field: "User Reviews (Review ID)"}
		}
		reviewer := strings.TrimPrefix(htmlutil.NextSiblingText(n), "by ")
		reviews = append(reviews, UserReview{
			ID:       id,
			Reviewer: strings.TrimSpace(reviewer),
			Name:     textutil.CleanFragment(htmlutil.GetText(n)),
		})
	}
	return reviews, nil
}

// RelatedSeries pairs each linked series with the relation note that
// follows it, e.g. "(Sequel)".
func (s *Series) RelatedSeries() ([]RelatedSeries, error) {
	content, err := s.section(sectionRelatedSeries)
	if err != nil {
		return nil, err
	}
	var related []RelatedSeries
	for _, n := range content.Find("a[href]").Nodes {
		id, ok := urlutil.ID(htmlutil.Attr(n, "href"))
		if !ok {
			return nil, &ParseError{Field: "Related Series (Series ID)"}
		}
		entry := RelatedSeries{
			Series: SeriesRef{
				ID:    id,
				Title: textutil.CleanFragment(htmlutil.GetText(n)),
			},
		}
		if note := htmlutil.NextSiblingText(n); note != "" {
			relation := textutil.StripOuterParens(note)
			entry.Relation = &relation
		}
		related = append(related, entry)
	}
	return related, nil
}
