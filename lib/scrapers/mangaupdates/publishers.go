package mangaupdates

import (
	"strings"

	"muscraper/lib/htmlutil"
	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"
)

// the site renders a not-yet-registered publisher as wrapping text plus
// an "[Add]" anchor, joined by a non-breaking space.
const addPublisherSuffix = " [Add]"

// OriginalPublisher returns nil when the section has no anchor at all.
// A registered publisher is a "Publisher Info" link; an unregistered
// one is plain text next to the site's "Add" anchor.
func (s *Series) OriginalPublisher() (*Publisher, error) {
	if s.cache.originalPublisher.set {
		return s.cache.originalPublisher.value, nil
	}
	content, err := s.section(sectionOriginalPublisher)
	if err != nil {
		return nil, err
	}
	anchor := content.Find("a").First()
	if anchor.Length() == 0 {
		return s.cache.originalPublisher.put(nil), nil
	}

	node := anchor.Nodes[0]
	publisher := &Publisher{}
	if id, ok := urlutil.ID(htmlutil.Attr(node, "href")); ok {
		publisher.ID = &id
	}
	switch {
	case htmlutil.Attr(node, "title") == "Publisher Info":
		publisher.Name = textutil.CleanFragment(htmlutil.GetText(node))
	case strings.TrimSpace(htmlutil.GetText(node)) == "Add":
		parent := strings.TrimSpace(htmlutil.GetText(node.Parent))
		publisher.Name = strings.TrimSpace(strings.TrimSuffix(parent, addPublisherSuffix))
	default:
		return nil, &ParseError{Field: sectionOriginalPublisher}
	}
	return s.cache.originalPublisher.put(publisher), nil
}

// SerializedIn lists the magazines the series ran in; the trailing
// parenthesized text names the magazine's publisher.
func (s *Series) SerializedIn() ([]Magazine, error) {
	content, err := s.section(sectionSerializedIn)
	if err != nil {
		return nil, err
	}
	var magazines []Magazine
	for _, n := range content.Find("a[href]").Nodes {
		magazine := Magazine{
			Name: textutil.CleanFragment(htmlutil.GetText(n)),
			URL:  s.client.BaseURL() + "/" + htmlutil.Attr(n, "href"),
		}
		if note := htmlutil.NextSiblingText(n); note != "" {
			parent := textutil.StripOuterParens(note)
			magazine.Parent = &parent
		}
		magazines = append(magazines, magazine)
	}
	return magazines, nil
}

// EnglishPublisher lists licensed publishers; the trailing text notes
// the format of the license, e.g. "(10 Vols - Complete)".
func (s *Series) EnglishPublisher() ([]Publisher, error) {
	content, err := s.section(sectionEnglishPublisher)
	if err != nil {
		return nil, err
	}
	var publishers []Publisher
	for _, n := range content.Find("a[href]").Nodes {
		publisher := Publisher{
			Name: textutil.CleanFragment(htmlutil.GetText(n)),
		}
		if id, ok := urlutil.ID(htmlutil.Attr(n, "href")); ok {
			publisher.ID = &id
		}
		if note := htmlutil.NextSiblingText(n); note != "" {
			cleaned := textutil.StripOuterParens(note)
			publisher.Note = &cleaned
		}
		publishers = append(publishers, publisher)
	}
	return publishers, nil
}
