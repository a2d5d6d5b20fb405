// Package page holds the in-memory document the terminal shell renders.
//
// It models just enough of a browser page for the client scripts: elements
// with ids, class lists, attributes and inline styles, a body they attach to,
// meta tags, and synchronous event dispatch.
package page

import (
	"strings"
)

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota
	KindText
)

// Element is a node in the document tree. Text nodes share the type and
// carry their content in Text.
type Element struct {
	Kind NodeKind
	Tag  string
	Text string

	id       string
	classes  []string
	attrs    map[string]string
	style    map[string]string
	children []*Element
	parent   *Element
	doc      *Document
}

func newElement(tag string) *Element {
	return &Element{
		Kind:  KindElement,
		Tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

// NewText creates a detached text node.
func NewText(s string) *Element {
	return &Element{Kind: KindText, Text: s}
}

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// SetID changes the element id, keeping the document index current.
func (e *Element) SetID(id string) {
	if e.doc != nil && e.id != "" {
		e.doc.unindex(e)
	}
	e.id = id
	if e.doc != nil && id != "" {
		e.doc.index[id] = e
	}
}

// IsConnected reports whether the element is attached to a document.
func (e *Element) IsConnected() bool { return e.doc != nil }

// ClassName returns the space-separated class list.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

// SetClassName replaces the whole class list.
func (e *Element) SetClassName(s string) {
	e.classes = e.classes[:0]
	e.AddClass(strings.Fields(s)...)
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// HasClass reports whether the class list contains c.
func (e *Element) HasClass(c string) bool {
	for _, existing := range e.classes {
		if existing == c {
			return true
		}
	}
	return false
}

// AddClass appends classes that are not already present.
func (e *Element) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
}

// RemoveClass drops classes, ignoring ones that are absent.
func (e *Element) RemoveClass(classes ...string) {
	for _, c := range classes {
		for i, existing := range e.classes {
			if existing == c {
				e.classes = append(e.classes[:i], e.classes[i+1:]...)
				break
			}
		}
	}
}

// ToggleClass flips c and reports whether it is now present.
func (e *Element) ToggleClass(c string) bool {
	if e.HasClass(c) {
		e.RemoveClass(c)
		return false
	}
	e.AddClass(c)
	return true
}

// Attr returns an attribute value. id and class are served from their
// dedicated fields.
func (e *Element) Attr(name string) (string, bool) {
	switch name {
	case "id":
		return e.id, e.id != ""
	case "class":
		return e.ClassName(), len(e.classes) > 0
	}
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	switch name {
	case "id":
		e.SetID(value)
	case "class":
		e.SetClassName(value)
	default:
		if e.attrs == nil {
			e.attrs = make(map[string]string)
		}
		e.attrs[name] = value
	}
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Data returns a data-* attribute.
func (e *Element) Data(key string) (string, bool) {
	return e.Attr("data-" + key)
}

// SetData sets a data-* attribute.
func (e *Element) SetData(key, value string) {
	e.SetAttr("data-"+key, value)
}

// DeleteData removes a data-* attribute.
func (e *Element) DeleteData(key string) {
	e.RemoveAttr("data-" + key)
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	if e.style == nil {
		e.style = make(map[string]string)
	}
	if value == "" {
		delete(e.style, prop)
		return
	}
	e.style[prop] = value
}

// Parent returns the parent node or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// FirstChild returns the first child or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// NextSibling returns the node after e under the same parent.
func (e *Element) NextSibling() *Element {
	if e.parent == nil {
		return nil
	}
	siblings := e.parent.children
	for i, s := range siblings {
		if s == e && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

// AppendChild moves child under e, after any existing children.
func (e *Element) AppendChild(child *Element) *Element {
	return e.InsertBefore(child, nil)
}

// InsertBefore moves child under e, just before ref. A nil or foreign ref
// appends.
func (e *Element) InsertBefore(child, ref *Element) *Element {
	if child == nil || child == e {
		return child
	}
	child.Remove()

	pos := len(e.children)
	if ref != nil {
		for i, c := range e.children {
			if c == ref {
				pos = i
				break
			}
		}
	}
	e.children = append(e.children, nil)
	copy(e.children[pos+1:], e.children[pos:])
	e.children[pos] = child
	child.parent = e

	if e.doc != nil {
		e.doc.attach(child)
	}
	return child
}

// Remove detaches e from its parent and from the document.
func (e *Element) Remove() {
	if e.parent != nil {
		p := e.parent
		for i, c := range p.children {
			if c == e {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		e.parent = nil
	}
	if e.doc != nil {
		e.doc.detach(e)
	}
}

// ReplaceChildren removes every child of e and appends the given nodes.
func (e *Element) ReplaceChildren(nodes ...*Element) {
	for len(e.children) > 0 {
		e.children[0].Remove()
	}
	for _, n := range nodes {
		e.AppendChild(n)
	}
}

// SetText replaces the children with a single text node. The content is
// never interpreted as markup.
func (e *Element) SetText(s string) {
	e.ReplaceChildren(NewText(s))
}

// TextContent concatenates every descendant text node.
func (e *Element) TextContent() string {
	if e.Kind == KindText {
		return e.Text
	}
	var b strings.Builder
	e.Walk(func(n *Element) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the node's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		c.Walk(fn)
	}
}

// QueryAll returns descendants of e bearing class, in document order.
func (e *Element) QueryAll(class string) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if n.Kind == KindElement && n.HasClass(class) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first descendant bearing class.
func (e *Element) Query(class string) *Element {
	if found := e.QueryAll(class); len(found) > 0 {
		return found[0]
	}
	return nil
}

// QueryTag returns the first descendant with the given tag.
func (e *Element) QueryTag(tag string) *Element {
	var found *Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if found != nil {
				return false
			}
			if n.Kind == KindElement && n.Tag == tag {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// Closest returns e or its nearest ancestor bearing class.
func (e *Element) Closest(class string) *Element {
	for n := e; n != nil; n = n.parent {
		if n.Kind == KindElement && n.HasClass(class) {
			return n
		}
	}
	return nil
}

// ClosestID returns e or its nearest ancestor with the given id.
func (e *Element) ClosestID(id string) *Element {
	for n := e; n != nil; n = n.parent {
		if n.Kind == KindElement && n.id == id {
			return n
		}
	}
	return nil
}
