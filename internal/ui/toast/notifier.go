package toast

import (
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/icons"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/sched"
	"github.com/eureka-app/eureka-tui/internal/types"
)

// Element structure, shared with the renderer.
const (
	ElementID      = "toast"
	ClassToast     = "toast"
	ClassShow      = "show"
	ClassContainer = "toast-container"
	ClassIcon      = "toast-icon"
	ClassMessage   = "toast-message"
)

// State is the notifier's position in the show/hide cycle.
type State int

const (
	StateHidden State = iota
	StateRevealing
	StateVisible
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateRevealing:
		return "revealing"
	case StateVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// ContentMode decides how the message is put into the element.
type ContentMode int

const (
	// ContentText assigns the message as text.
	ContentText ContentMode = iota
	// ContentMarkup parses the message as HTML. Only for trusted messages.
	ContentMarkup
)

// Options configures a Notifier.
type Options struct {
	RevealDelay  time.Duration
	DismissDelay time.Duration
	DefaultKind  types.ToastKind
	Content      ContentMode
	Animate      bool
}

// DefaultOptions returns the stock timings: reveal after 100ms, hide 3s
// later.
func DefaultOptions() Options {
	return Options{
		RevealDelay:  100 * time.Millisecond,
		DismissDelay: 3 * time.Second,
		DefaultKind:  types.ToastInfo,
		Content:      ContentText,
		Animate:      true,
	}
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type revealMsg struct {
	id  int
	seq int
}

type dismissMsg struct {
	id  int
	seq int
}

type frameMsg struct {
	id  int
	seq int
}

// Notifier owns the page's toast element and its timers.
type Notifier struct {
	id     int
	doc    *page.Document
	sched  sched.Scheduler
	icons  icons.Renderer
	opts   Options
	logger *slog.Logger

	el    *page.Element
	state State
	seq   int
	slide slide

	observers []func(types.ToastRequest)
}

// New creates a Notifier for doc. The icon renderer may be nil.
func New(doc *page.Document, s sched.Scheduler, ic icons.Renderer, opts Options, logger *slog.Logger) *Notifier {
	if s == nil {
		s = sched.Tick{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.DefaultKind.Valid() {
		opts.DefaultKind = types.ToastInfo
	}
	return &Notifier{
		id:     nextID(),
		doc:    doc,
		sched:  s,
		icons:  ic,
		opts:   opts,
		logger: logger,
		slide:  newSlide(),
	}
}

// OnNotify registers fn to observe every displayed request.
func (n *Notifier) OnNotify(fn func(types.ToastRequest)) {
	n.observers = append(n.observers, fn)
}

// NotifyDefault shows message with the configured default kind.
func (n *Notifier) NotifyDefault(message string) tea.Cmd {
	return n.Notify(message, "")
}

// NotifyRequest shows r.
func (n *Notifier) NotifyRequest(r types.ToastRequest) tea.Cmd {
	return n.Notify(r.Message, r.Kind)
}

// Notify overwrites the toast with message and kind and restarts the
// reveal/dismiss cycle. An empty kind means the default kind; unrecognised
// kinds render as info.
func (n *Notifier) Notify(message string, kind types.ToastKind) tea.Cmd {
	if kind == "" {
		kind = n.opts.DefaultKind
	} else {
		kind = types.ParseToastKind(string(kind))
	}

	el := n.element()
	n.populate(el, message, kind)

	n.seq++
	n.state = StateRevealing
	n.slide.stop()

	n.logger.Debug("toast", "kind", kind, "seq", n.seq)
	for _, fn := range n.observers {
		fn(types.ToastRequest{Message: message, Kind: kind})
	}

	return n.sched.After(n.opts.RevealDelay, revealMsg{id: n.id, seq: n.seq})
}

// Update consumes the notifier's own timer messages. Anything else, and
// anything left over from a superseded call, is ignored.
func (n *Notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case revealMsg:
		if !n.current(msg.id, msg.seq) || n.state != StateRevealing || n.el == nil {
			return nil
		}
		n.el.AddClass(ClassShow)
		n.state = StateVisible
		if n.icons != nil {
			n.icons.Replace(n.el)
		}
		cmds := []tea.Cmd{n.sched.After(n.opts.DismissDelay, dismissMsg{id: n.id, seq: n.seq})}
		if n.opts.Animate {
			n.slide.start()
			cmds = append(cmds, n.sched.After(frameInterval, frameMsg{id: n.id, seq: n.seq}))
		}
		return tea.Batch(cmds...)

	case dismissMsg:
		if !n.current(msg.id, msg.seq) || n.state != StateVisible {
			return nil
		}
		if n.el != nil {
			n.el.RemoveClass(ClassShow)
		}
		n.state = StateHidden
		n.slide.stop()
		return nil

	case frameMsg:
		if !n.current(msg.id, msg.seq) || n.state != StateVisible || !n.slide.active {
			return nil
		}
		if n.slide.step() {
			return nil
		}
		return n.sched.After(frameInterval, frameMsg{id: n.id, seq: n.seq})
	}
	return nil
}

func (n *Notifier) current(id, seq int) bool {
	return id == n.id && seq == n.seq
}

// element resolves the toast element, creating and attaching it when the
// page has none.
func (n *Notifier) element() *page.Element {
	if n.el != nil && n.el.IsConnected() {
		ensureSlots(n.doc, n.el)
		return n.el
	}
	if el := n.doc.GetElementByID(ElementID); el != nil {
		ensureSlots(n.doc, el)
		n.el = el
		return el
	}

	el := n.doc.CreateElement("div")
	el.SetID(ElementID)
	el.SetClassName(ClassToast)
	el.SetAttr("role", "alert")
	ensureSlots(n.doc, el)
	n.doc.Body.AppendChild(el)
	n.el = el
	return el
}

func ensureSlots(doc *page.Document, el *page.Element) {
	if el.Query(ClassIcon) != nil && el.Query(ClassMessage) != nil {
		return
	}
	container := doc.CreateElement("div")
	container.SetClassName(ClassContainer)

	icon := doc.CreateElement("div")
	icon.SetClassName(ClassIcon)

	message := doc.CreateElement("div")
	message.SetClassName(ClassMessage)

	container.AppendChild(icon)
	container.AppendChild(message)
	el.ReplaceChildren(container)
}

func (n *Notifier) populate(el *page.Element, message string, kind types.ToastKind) {
	el.SetClassName(ClassToast + " " + ClassToast + "-" + string(kind))

	slot := el.Query(ClassMessage)
	switch n.opts.Content {
	case ContentMarkup:
		if err := slot.SetInnerHTML(message); err != nil {
			n.logger.Warn("toast markup rejected, showing as text", "error", err)
			slot.SetText(message)
		}
	default:
		slot.SetText(message)
	}

	icon := n.doc.CreateElement("i")
	icon.SetAttr("data-icon", kind.Icon())
	el.Query(ClassIcon).ReplaceChildren(icon)
}

// Element returns the toast element, nil before the first Notify.
func (n *Notifier) Element() *page.Element { return n.el }

// State returns the current cycle state.
func (n *Notifier) State() State { return n.state }

// Visible reports whether the element carries the show class.
func (n *Notifier) Visible() bool {
	return n.el != nil && n.el.HasClass(ClassShow)
}

// Offset is the slide-in transition progress: 1 just revealed, 0 settled.
func (n *Notifier) Offset() float64 {
	if !n.slide.active {
		return 0
	}
	return n.slide.pos
}

// KindOf reads the kind from an element's toast-<kind> class.
func KindOf(el *page.Element) types.ToastKind {
	if el == nil {
		return types.ToastInfo
	}
	for _, c := range el.Classes() {
		suffix, ok := strings.CutPrefix(c, ClassToast+"-")
		if !ok {
			continue
		}
		if k := types.ToastKind(suffix); k.Valid() {
			return k
		}
	}
	return types.ToastInfo
}
