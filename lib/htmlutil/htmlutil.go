package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node`.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FirstText returns the trimmed contents of the first direct text child
// of `node`, skipping nothing else. Unlike GetText it will not descend
// into child elements, which matters when a label element nests another
// element after its text ("Status" vs "Status in Country of Origin").
func FirstText(node *html.Node) string {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			return strings.TrimSpace(child.Data)
		}
	}
	return ""
}

// NextSiblingText returns the trimmed text of the node immediately
// following `node`, if that sibling is a text node; otherwise "".
func NextSiblingText(node *html.Node) string {
	sibling := node.NextSibling
	if sibling == nil || sibling.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(sibling.Data)
}

// NextSiblingElement returns the first following sibling element with
// the given tag name, or nil.
func NextSiblingElement(node *html.Node, name string) *html.Node {
	for sibling := node.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type == html.ElementNode && sibling.Data == name {
			return sibling
		}
	}
	return nil
}

// Attr returns the value of the named attribute on a raw node.
func Attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
