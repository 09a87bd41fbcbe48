package mangaupdates

import (
	"strings"

	"muscraper/lib/htmlutil"
	"muscraper/lib/textutil"
	"muscraper/lib/urlutil"

	"golang.org/x/net/html"
)

func nodeText(node *html.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == html.TextNode {
		return strings.TrimSpace(node.Data)
	}
	return strings.TrimSpace(htmlutil.GetText(node))
}

// LatestReleases walks the section's child nodes as one flat run: "v."
// and "c." markers take their value from the following node, anchors
// and "by ..." text credit groups, a span is the elapsed-time note and
// a line break closes the release under construction.
func (s *Series) LatestReleases() ([]Release, error) {
	content, err := s.section(sectionLatestReleases)
	if err != nil {
		return nil, err
	}

	var children []*html.Node
	for child := content.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}

	var releases []Release
	release := Release{SeriesID: s.id}
	for i, node := range children {
		text := nodeText(node)
		isElement := node.Type == html.ElementNode

		switch {
		case node.Type == html.TextNode && text == "v." && i+1 < len(children):
			volume := nodeText(children[i+1])
			release.Volume = &volume
		case node.Type == html.TextNode && text == "c." && i+1 < len(children):
			chapter := nodeText(children[i+1])
			release.Chapter = &chapter
		case isElement && node.Data == "a" && htmlutil.Attr(node, "title") == "Group Info":
			group := Group{Name: textutil.CleanFragment(htmlutil.GetText(node))}
			if id, ok := urlutil.ID(htmlutil.Attr(node, "href")); ok {
				group.ID = &id
			}
			release.Groups = append(release.Groups, group)
		case isElement && i > 0 && children[i-1].Type == html.TextNode &&
			strings.TrimSpace(children[i-1].Data) == "by":
			// a group credited without a profile link
			release.Groups = append(release.Groups, Group{
				Name: textutil.CleanFragment(htmlutil.GetText(node)),
			})
		case isElement && node.Data == "span":
			elapsed := text
			release.Elapsed = &elapsed
		case isElement && node.Data == "br":
			releases = append(releases, release)
			release = Release{SeriesID: s.id}
		}
	}
	return releases, nil
}
