package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ids and classes the server markup is sorted by when a full page is
// imported.
const (
	MainContentID    = "main-content"
	FlashContainerID = "flash-container"
)

// FlashClasses mark server-rendered flash messages.
var FlashClasses = []string{"alert", "flash-message"}

var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

// SetInnerHTML parses markup and replaces the children of e with the
// result. The markup is not escaped; script and style elements are dropped
// because nothing here can run them.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	e.ReplaceChildren(nodes...)
	return nil
}

// ParseFragment converts an HTML fragment into detached elements.
func ParseFragment(markup string) ([]*Element, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	out := make([]*Element, 0, len(parsed))
	for _, n := range parsed {
		if el := convert(n); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// ImportHTML loads a full server page: meta tags are recorded, flash
// messages are moved into the flash container and the children of
// #main-content replace the document's main content.
func (d *Document) ImportHTML(r io.Reader) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.DataAtom == atom.Meta:
				if name := attr(n, "name"); name != "" {
					d.SetMeta(name, attr(n, "content"))
				}
				return
			case isFlash(n):
				if el := convert(n); el != nil {
					d.flashContainer().AppendChild(el)
				}
				return
			case attr(n, "id") == MainContentID:
				main := d.mainContent()
				var nodes []*Element
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if el := convert(c); el != nil {
						nodes = append(nodes, el)
					}
				}
				main.ReplaceChildren(nodes...)
				// Flash messages nested in the main content are already
				// carried over with it.
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return nil
}

func (d *Document) mainContent() *Element {
	if el := d.GetElementByID(MainContentID); el != nil {
		return el
	}
	el := d.CreateElement("main")
	el.SetID(MainContentID)
	d.Body.AppendChild(el)
	return el
}

func (d *Document) flashContainer() *Element {
	if el := d.GetElementByID(FlashContainerID); el != nil {
		return el
	}
	el := d.CreateElement("div")
	el.SetID(FlashContainerID)
	d.Body.AppendChild(el)
	return el
}

func convert(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return NewText(collapseSpace(n.Data))
	case html.ElementNode:
		if skippedTags[n.Data] {
			return nil
		}
		el := newElement(n.Data)
		for _, a := range n.Attr {
			el.SetAttr(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		return nil
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isFlash(n *html.Node) bool {
	classes := strings.Fields(attr(n, "class"))
	for _, c := range classes {
		for _, f := range FlashClasses {
			if c == f {
				return true
			}
		}
	}
	return false
}

func collapseSpace(s string) string {
	lead := len(s) > 0 && isSpace(s[0])
	trail := len(s) > 0 && isSpace(s[len(s)-1])
	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
