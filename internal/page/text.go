package page

import "strings"

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dt": true, "dd": true, "fieldset": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

// InnerText renders e as plain lines: block elements start a new line and
// <br> breaks one. Hidden elements (style display:none) are skipped.
func (e *Element) InnerText() string {
	var b strings.Builder
	e.writeText(&b)
	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func (e *Element) writeText(b *strings.Builder) {
	if e.Kind == KindText {
		b.WriteString(e.Text)
		return
	}
	if e.Style("display") == "none" {
		return
	}
	if e.Tag == "br" {
		b.WriteByte('\n')
		return
	}
	block := blockTags[e.Tag]
	if block {
		b.WriteByte('\n')
	}
	if e.Tag == "li" {
		b.WriteString("• ")
	}
	for _, c := range e.children {
		c.writeText(b)
	}
	if block {
		b.WriteByte('\n')
	}
}
