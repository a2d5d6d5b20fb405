// Package lifecycle wires page behaviour to the partial-update request
// cycle: CSRF headers, busy buttons, toasts for JSON replies and failures,
// swap transitions, flash messages and form validation.
//
// Handlers are plain document listeners. Work that has to happen later is
// deferred onto the dispatched event as a tea.Cmd whose message comes back
// through Glue.Update.
package lifecycle

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/icons"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/sched"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/go-playground/validator/v10"
)

// Event names dispatched on the document.
const (
	EventConfigRequest = "configRequest"
	EventBeforeRequest = "beforeRequest"
	EventAfterRequest  = "afterRequest"
	EventResponseError = "responseError"
	EventSendError     = "sendError"
	EventBeforeSwap    = "beforeSwap"
	EventAfterSwap     = "afterSwap"
	EventValidate      = "validation:validate"
	EventClick         = "click"
)

// CSRFHeader carries the anti-forgery token on every request.
const CSRFHeader = "X-CSRF-Token"

// Toaster shows a transient notification.
type Toaster interface {
	Notify(message string, kind types.ToastKind) tea.Cmd
}

// CookieSource exposes session cookies.
type CookieSource interface {
	Cookie(name string) (string, bool)
}

// Exchange is the detail of every request event. Listeners may add headers
// during configRequest; the response fields are filled before afterRequest.
type Exchange struct {
	Target  *page.Element
	Method  string
	Path    string
	Headers http.Header

	Status int
	Body   []byte
	Err    error
}

// NewExchange starts an exchange for a request issued by target.
func NewExchange(target *page.Element, method, path string) *Exchange {
	return &Exchange{
		Target:  target,
		Method:  method,
		Path:    path,
		Headers: make(http.Header),
	}
}

// Options configures the glue.
type Options struct {
	ErrorMessage string
	LoadingText  string
	CSRFCookie   string
	FlashDismiss time.Duration
	FlashFade    time.Duration
	SwapSettle   time.Duration
}

// DefaultOptions returns the stock messages and timings.
func DefaultOptions() Options {
	return Options{
		ErrorMessage: "Something went wrong. Please try again.",
		LoadingText:  "Loading...",
		CSRFCookie:   "csrf_token",
		FlashDismiss: 5 * time.Second,
		FlashFade:    500 * time.Millisecond,
		SwapSettle:   50 * time.Millisecond,
	}
}

var lastID int64

type swapSettledMsg struct {
	id     int
	target *page.Element
}

type flashFadeMsg struct {
	id int
	el *page.Element
}

type flashRemoveMsg struct {
	id int
	el *page.Element
}

// Glue installs the lifecycle handlers on a document.
type Glue struct {
	id       int
	doc      *page.Document
	toaster  Toaster
	sched    sched.Scheduler
	icons    icons.Renderer
	cookies  CookieSource
	validate *validator.Validate
	opts     Options
	logger   *slog.Logger

	// button children replaced by the loading indicator
	saved map[*page.Element][]*page.Element
}

// New creates the glue. The toaster is required; icons, cookies and the
// logger are set with the With methods.
func New(doc *page.Document, toaster Toaster, s sched.Scheduler, opts Options) *Glue {
	if s == nil {
		s = sched.Tick{}
	}
	return &Glue{
		id:       int(atomic.AddInt64(&lastID, 1)),
		doc:      doc,
		toaster:  toaster,
		sched:    s,
		validate: validator.New(),
		opts:     opts,
		logger:   slog.Default(),
		saved:    make(map[*page.Element][]*page.Element),
	}
}

// WithIcons sets the icon renderer run after swaps.
func (g *Glue) WithIcons(r icons.Renderer) *Glue {
	g.icons = r
	return g
}

// WithCookies sets the fallback CSRF token source.
func (g *Glue) WithCookies(c CookieSource) *Glue {
	g.cookies = c
	return g
}

// WithLogger sets the logger.
func (g *Glue) WithLogger(l *slog.Logger) *Glue {
	if l != nil {
		g.logger = l
	}
	return g
}

// Install registers every handler on the document. Call it once.
func (g *Glue) Install() {
	g.doc.AddEventListener(EventConfigRequest, g.addCSRF)
	g.doc.AddEventListener(EventBeforeRequest, g.showLoading)
	g.doc.AddEventListener(EventAfterRequest, g.restoreLoading)
	g.doc.AddEventListener(EventAfterRequest, g.toastJSON)
	g.doc.AddEventListener(EventResponseError, g.toastError)
	g.doc.AddEventListener(EventSendError, g.toastError)
	g.doc.AddEventListener(EventBeforeSwap, g.markSwapping)
	g.doc.AddEventListener(EventAfterSwap, g.settleSwap)
	g.doc.AddEventListener(EventValidate, g.validateForm)
	g.doc.AddEventListener(EventClick, g.closeFlash)
}

// Begin announces a request: headers are configured, then the issuing
// button shows its loading state.
func (g *Glue) Begin(ex *Exchange) tea.Cmd {
	return tea.Batch(
		g.doc.Dispatch(page.NewEvent(EventConfigRequest, ex.Target, ex)),
		g.doc.Dispatch(page.NewEvent(EventBeforeRequest, ex.Target, ex)),
	)
}

// Complete announces the outcome of a request. A transport failure fires
// sendError and an error status fires responseError. Otherwise, when swap is
// non-nil, it runs between beforeSwap and afterSwap; a listener preventing
// beforeSwap skips it. afterRequest always comes last.
func (g *Glue) Complete(ex *Exchange, swap func() error) tea.Cmd {
	var cmds []tea.Cmd
	dispatch := func(typ string) *page.Event {
		e := page.NewEvent(typ, ex.Target, ex)
		cmds = append(cmds, g.doc.Dispatch(e))
		return e
	}

	switch {
	case ex.Err != nil:
		dispatch(EventSendError)
	case ex.Status >= http.StatusBadRequest:
		dispatch(EventResponseError)
	case swap != nil:
		if e := dispatch(EventBeforeSwap); !e.DefaultPrevented() {
			if err := swap(); err != nil {
				g.logger.Warn("swap failed", "path", ex.Path, "error", err)
			} else {
				dispatch(EventAfterSwap)
			}
		}
	}
	dispatch(EventAfterRequest)
	return tea.Batch(cmds...)
}

// Validate runs form validation and reports whether the form may be
// submitted.
func (g *Glue) Validate(form *page.Element) (bool, tea.Cmd) {
	e := page.NewEvent(EventValidate, form, nil)
	cmd := g.doc.Dispatch(e)
	return !e.DefaultPrevented(), cmd
}

// Update consumes the glue's own deferred messages.
func (g *Glue) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case swapSettledMsg:
		if msg.id == g.id {
			msg.target.RemoveClass(ClassSwapping)
		}
	case flashFadeMsg:
		if msg.id == g.id {
			return g.fade(msg.el)
		}
	case flashRemoveMsg:
		if msg.id == g.id && msg.el.IsConnected() {
			msg.el.Remove()
		}
	}
	return nil
}
