package page

// Document is the root of the page model. It owns the body, the id index,
// meta tags and event listeners.
type Document struct {
	Body *Element

	index     map[string]*Element
	meta      map[string]string
	listeners map[string][]Listener
}

// New creates an empty document with an attached body.
func New() *Document {
	d := &Document{
		index:     make(map[string]*Element),
		meta:      make(map[string]string),
		listeners: make(map[string][]Listener),
	}
	d.Body = newElement("body")
	d.Body.doc = d
	return d
}

// CreateElement returns a detached element owned by no parent.
func (d *Document) CreateElement(tag string) *Element {
	return newElement(tag)
}

// GetElementByID looks up an attached element.
func (d *Document) GetElementByID(id string) *Element {
	return d.index[id]
}

// QueryAll returns attached elements bearing class in document order.
func (d *Document) QueryAll(class string) []*Element {
	return d.Body.QueryAll(class)
}

// Query returns the first attached element bearing class.
func (d *Document) Query(class string) *Element {
	return d.Body.Query(class)
}

// Meta returns the content of <meta name=name>.
func (d *Document) Meta(name string) (string, bool) {
	v, ok := d.meta[name]
	return v, ok
}

// SetMeta records a meta tag value.
func (d *Document) SetMeta(name, content string) {
	d.meta[name] = content
}

func (d *Document) attach(root *Element) {
	root.Walk(func(n *Element) bool {
		n.doc = d
		if n.id != "" {
			d.index[n.id] = n
		}
		return true
	})
}

func (d *Document) detach(root *Element) {
	root.Walk(func(n *Element) bool {
		d.unindex(n)
		n.doc = nil
		return true
	})
}

func (d *Document) unindex(n *Element) {
	if n.id != "" && d.index[n.id] == n {
		delete(d.index, n.id)
	}
}
