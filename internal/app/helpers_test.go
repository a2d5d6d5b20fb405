package app

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/config"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/sched/schedtest"
	"github.com/eureka-app/eureka-tui/internal/services/network"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
	"github.com/eureka-app/eureka-tui/internal/ui/toast"
	"github.com/stretchr/testify/require"
)

const startPage = `<!doctype html>
<html>
<head><meta name="csrf-token" content="tok-1"><title>Eureka</title></head>
<body>
  <div class="alert alert-success">Welcome back</div>
  <div id="main-content">
    <h1>My entries</h1>
    <ul><li>First entry</li><li>Second entry</li></ul>
  </div>
</body>
</html>`

// fakeServer answers by "METHOD path" and records every request.
type fakeServer struct {
	mu       sync.Mutex
	replies  map[string]*api.Response
	errs     map[string]error
	requests []api.Request
	cookies  map[string]string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		replies: map[string]*api.Response{
			"PAGE " + StartPath: htmlReply(startPage),
		},
		errs:    map[string]error{},
		cookies: map[string]string{},
	}
}

func htmlReply(body string) *api.Response {
	return &api.Response{
		Status:      http.StatusOK,
		Header:      http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:        []byte(body),
		ContentType: "text/html",
	}
}

func jsonReply(body string) *api.Response {
	return &api.Response{
		Status:      http.StatusOK,
		Header:      http.Header{"Content-Type": {"application/json"}},
		Body:        []byte(body),
		ContentType: "application/json",
	}
}

func (f *fakeServer) reply(key string, resp *api.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key] = resp
}

func (f *fakeServer) fail(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = err
}

func (f *fakeServer) answer(key string) (*api.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return f.replies[key], err
	}
	if resp, ok := f.replies[key]; ok {
		return resp, nil
	}
	return &api.Response{Status: http.StatusNotFound, Header: http.Header{}}, nil
}

func (f *fakeServer) Do(_ context.Context, r api.Request) (*api.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
	return f.answer(r.Method + " " + r.Path)
}

func (f *fakeServer) FetchPage(_ context.Context, path string) (*api.Response, error) {
	return f.answer("PAGE " + path)
}

func (f *fakeServer) Cookie(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.cookies[name]
	return v, ok
}

func (f *fakeServer) lastRequest(t *testing.T) api.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request sent")
	return f.requests[len(f.requests)-1]
}

func (f *fakeServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func testConfig() *config.Config {
	return &config.Config{
		Version: config.CurrentVersion,
		Server:  config.ServerConfig{BaseURL: "http://eureka.test", TimeoutMs: 1000},
		Toast: config.ToastConfig{
			RevealDelayMs:  100,
			DismissDelayMs: 3000,
			DefaultKind:    "info",
			Icons:          "unicode",
		},
		Flash:    config.FlashConfig{DismissMs: 5000, FadeMs: 500},
		Layout:   config.LayoutConfig{Breakpoint: 100, SidebarWidth: 28, SidebarCollapsedWidth: 6},
		Prefs:    config.PrefsConfig{Path: ":memory:"},
		Log:      config.LogConfig{Level: "info"},
		Messages: config.MessagesConfig{RequestError: "Something went wrong. Please try again."},
	}
}

type harness struct {
	m      Model
	server *fakeServer
	rec    *schedtest.Recorder
	store  *prefs.MemoryStore
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	h := &harness{
		server: newFakeServer(),
		rec:    &schedtest.Recorder{},
		store:  prefs.NewMemoryStore(),
	}
	opts := Options{
		Config:     testConfig(),
		Server:     h.server,
		Prefs:      h.store,
		Sched:      h.rec,
		DetectDark: func() bool { return true },
		User:       "ada@example.com",
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	m, err := New(opts)
	require.NoError(t, err)
	h.m = m
	return h
}

// start sizes the terminal and loads the start page.
func (h *harness) start(width, height int) {
	h.update(tea.WindowSizeMsg{Width: width, Height: height})
	h.run(h.m.Init())
}

func (h *harness) update(msg tea.Msg) {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd)
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.update(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.update(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.update(tea.KeyMsg{Type: tea.KeyTab})
	case "ctrl+s":
		h.update(tea.KeyMsg{Type: tea.KeyCtrlS})
	case "ctrl+b":
		h.update(tea.KeyMsg{Type: tea.KeyCtrlB})
	default:
		for _, r := range s {
			h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
}

// run executes cmd and feeds back the messages that carry results. Timer
// messages stay in the recorder for the test to deliver.
func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case startPageMsg, responseMsg, network.StatusMsg,
			overlay.EntrySubmittedMsg, overlay.CloseOverlayMsg,
			overlay.ConfirmResult, overlay.DiscardRequestedMsg:
			h.update(msg)
		}
	}
}

// deliverTimers hands every recorded timer message to the model.
func (h *harness) deliverTimers() {
	for _, c := range h.rec.Take() {
		next, _ := h.m.Update(c.Msg)
		h.m = next.(Model)
	}
}

// collect runs cmd, flattening batches. Commands that block, such as
// tea.Tick, are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func (h *harness) toastMessage() string {
	el := h.m.Notifier().Element()
	if el == nil {
		return ""
	}
	if slot := el.Query(toast.ClassMessage); slot != nil {
		return strings.TrimSpace(slot.TextContent())
	}
	return ""
}

func (h *harness) toastKind() types.ToastKind {
	return toast.KindOf(h.m.Notifier().Element())
}
