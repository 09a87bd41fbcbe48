package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestFirstText(t *testing.T) {
	doc := parse(t, `<div><b>Status
		<div class="dual">in Country of Origin</div></b></div>`)
	b := doc.Find("b").Nodes[0]
	require.Equal(t, "Status", FirstText(b))
	require.Contains(t, GetText(b), "in Country of Origin")
}

func TestFirstTextNoTextChild(t *testing.T) {
	doc := parse(t, `<div><b><i>only nested</i></b></div>`)
	require.Equal(t, "", FirstText(doc.Find("b").Nodes[0]))
}

func TestNextSiblingText(t *testing.T) {
	doc := parse(t, `<p><a href="#">Vagabond</a> (Adapted From)</p>`)
	a := doc.Find("a").Nodes[0]
	require.Equal(t, "(Adapted From)", NextSiblingText(a))

	doc = parse(t, `<p><a href="#">Vagabond</a><b>bold</b></p>`)
	require.Equal(t, "", NextSiblingText(doc.Find("a").Nodes[0]))
}

func TestNextSiblingElement(t *testing.T) {
	doc := parse(t, `<p><a href="#">user</a> - Rating: <b>9.0</b><br></p>`)
	a := doc.Find("a").Nodes[0]
	b := NextSiblingElement(a, "b")
	require.NotNil(t, b)
	require.Equal(t, "9.0", GetText(b))
	require.Nil(t, NextSiblingElement(a, "table"))
}

func TestAttr(t *testing.T) {
	doc := parse(t, `<a href="series.html?id=33" title="Series Info">One Piece</a>`)
	a := doc.Find("a").Nodes[0]
	require.Equal(t, "series.html?id=33", Attr(a, "href"))
	require.Equal(t, "", Attr(a, "rel"))
}
