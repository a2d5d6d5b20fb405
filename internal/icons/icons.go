// Package icons swaps icon placeholders for terminal glyphs.
//
// Markup names an icon with an empty element carrying data-icon, the same
// convention the web client uses with its icon font:
//
//	<i data-icon="check-circle"></i>
//
// Replace fills every such element under a root with the glyph text and
// marks it rendered, so calling it again after further mutations is safe.
package icons

import "github.com/eureka-app/eureka-tui/internal/page"

// Renderer fills icon placeholders under root.
type Renderer interface {
	Replace(root *page.Element)
}

// Set names a glyph table.
type Set string

const (
	SetUnicode Set = "unicode"
	SetNerd    Set = "nerd"
)

const renderedAttr = "data-icon-rendered"

var unicodeGlyphs = map[string]string{
	"check-circle":   "✓",
	"alert-circle":   "✗",
	"alert-triangle": "⚠",
	"info":           "ℹ",
	"x":              "×",
	"menu":           "☰",
	"sun":            "☀",
	"moon":           "☾",
	"file-text":      "≡",
	"plus":           "+",
	"trash-2":        "⌫",
}

var nerdGlyphs = map[string]string{
	"check-circle":   "\uf058",
	"alert-circle":   "\uf06a",
	"alert-triangle": "\uf071",
	"info":           "\uf05a",
	"x":              "\uf00d",
	"menu":           "\uf0c9",
	"sun":            "\uf185",
	"moon":           "\uf186",
	"file-text":      "\uf15c",
	"plus":           "\uf067",
	"trash-2":        "\uf1f8",
}

// Glyphs renders icons from a glyph table.
type Glyphs struct {
	table map[string]string
}

// New returns a renderer for set. Unknown sets fall back to unicode.
func New(set Set) *Glyphs {
	if set == SetNerd {
		return &Glyphs{table: nerdGlyphs}
	}
	return &Glyphs{table: unicodeGlyphs}
}

// Lookup returns the glyph for name and whether the name is known. Unknown
// names get the info glyph.
func (g *Glyphs) Lookup(name string) (string, bool) {
	if glyph, ok := g.table[name]; ok {
		return glyph, true
	}
	return g.table["info"], false
}

// Replace implements Renderer.
func (g *Glyphs) Replace(root *page.Element) {
	if root == nil {
		return
	}
	root.Walk(func(n *page.Element) bool {
		if n.Kind != page.KindElement {
			return false
		}
		name, ok := n.Attr("data-icon")
		if !ok {
			return true
		}
		if rendered, _ := n.Attr(renderedAttr); rendered == name {
			return false
		}
		glyph, _ := g.Lookup(name)
		n.SetText(glyph)
		n.SetAttr(renderedAttr, name)
		return false
	})
}
