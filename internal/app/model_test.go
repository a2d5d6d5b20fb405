package app

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/services/network"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
	"github.com/eureka-app/eureka-tui/internal/ui/sidebar"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
	"github.com/eureka-app/eureka-tui/internal/ui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_BuildsShell(t *testing.T) {
	h := newHarness(t)
	doc := h.m.Document()

	assert.True(t, doc.Body.HasClass("theme-dark"), "system preference applies")
	theme, _, _ := h.store.Get(prefs.KeyTheme)
	assert.Equal(t, "dark", theme)

	require.NotNil(t, doc.GetElementByID(EntryFormID))
	require.NotNil(t, doc.GetElementByID(page.MainContentID))
	assert.Len(t, doc.QueryAll(sidebar.ClassNavLink), 3)
	assert.Equal(t, types.ModeNav, h.m.Mode())
	assert.Nil(t, h.m.Mirror())
}

func TestInit_ImportsStartPage(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)
	doc := h.m.Document()

	token, ok := doc.Meta("csrf-token")
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)

	assert.Contains(t, doc.GetElementByID(page.MainContentID).InnerText(), "First entry")

	flashes := doc.QueryAll("alert")
	require.Len(t, flashes, 1)
	assert.NotNil(t, flashes[0].Query(lifecycle.ClassCloseButton), "flash gets a close button")
	assert.Equal(t, types.ToastSuccess, flashKind(flashes[0]))
	assert.NotEmpty(t, h.rec.Calls, "flash dismissal is scheduled")
}

func TestInit_UnauthorizedShowsLoginHint(t *testing.T) {
	h := newHarness(t)
	h.server.fail("PAGE "+StartPath, api.ErrUnauthorized)

	h.start(120, 40)

	assert.Equal(t, loginHint, h.toastMessage())
	assert.Equal(t, types.ToastWarning, h.toastKind())
}

func TestInit_ServerDownShowsRequestError(t *testing.T) {
	h := newHarness(t)
	h.server.fail("PAGE "+StartPath, errors.New("connection refused"))

	h.start(120, 40)

	assert.Equal(t, "Something went wrong. Please try again.", h.toastMessage())
	assert.Equal(t, types.ToastError, h.toastKind())
}

func TestNavigate_SwapsMainContent(t *testing.T) {
	h := newHarness(t)
	h.server.reply("GET /entries/trash/partial", htmlReply(`<h2>Trash</h2><p>Nothing here</p>`))
	h.start(120, 40)
	h.rec.Take()

	h.key("jj")
	h.key("enter")

	req := h.server.lastRequest(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/entries/trash/partial", req.Path)
	assert.Equal(t, page.MainContentID, req.Target)
	assert.Equal(t, "tok-1", req.Headers.Get(lifecycle.CSRFHeader))

	main := h.m.Document().GetElementByID(page.MainContentID)
	assert.Equal(t, "Trash\nNothing here", main.InnerText())
	assert.True(t, main.HasClass(lifecycle.ClassSwapping))
	assert.Equal(t, types.ModeContent, h.m.Mode())
	assert.Equal(t, "/entries/trash/partial", h.m.path)

	links := h.m.Document().QueryAll(sidebar.ClassNavLink)
	assert.False(t, links[0].HasClass(sidebar.ClassActiveLink))
	assert.True(t, links[2].HasClass(sidebar.ClassActiveLink))

	h.deliverTimers()
	assert.False(t, main.HasClass(lifecycle.ClassSwapping), "swap settles")
}

func TestNavigate_UsesCookieTokenWithoutMeta(t *testing.T) {
	h := newHarness(t)
	h.server.fail("PAGE "+StartPath, errors.New("offline"))
	h.server.cookies["csrf_token"] = "from-cookie"
	h.start(120, 40)

	h.key("r")

	req := h.server.lastRequest(t)
	assert.Equal(t, HomePath, req.Path)
	assert.Equal(t, "from-cookie", req.Headers.Get(lifecycle.CSRFHeader))
}

func TestNavigate_ErrorStatusShowsToast(t *testing.T) {
	h := newHarness(t)
	h.server.reply("GET "+HomePath, &api.Response{Status: http.StatusInternalServerError, Header: http.Header{}})
	h.start(120, 40)
	before := h.m.Document().GetElementByID(page.MainContentID).InnerText()

	h.key("r")

	assert.Equal(t, "Something went wrong. Please try again.", h.toastMessage())
	assert.Equal(t, types.ToastError, h.toastKind())
	assert.Equal(t, before, h.m.Document().GetElementByID(page.MainContentID).InnerText(), "no swap on error")
}

func TestNavigate_SessionExpired(t *testing.T) {
	h := newHarness(t)
	h.server.fail("GET "+HomePath, api.ErrUnauthorized)
	h.start(120, 40)

	h.key("r")

	assert.Equal(t, loginHint, h.toastMessage())
	assert.Equal(t, types.ToastWarning, h.toastKind())
}

func TestNavigate_FollowsRedirect(t *testing.T) {
	h := newHarness(t)
	redirect := htmlReply("")
	redirect.Header.Set(api.HeaderRedirect, "/entries/7/partial")
	h.server.reply("GET "+HomePath, redirect)
	h.server.reply("GET /entries/7/partial", htmlReply(`<h1>Entry seven</h1>`))
	h.start(120, 40)

	h.key("r")

	assert.Equal(t, "/entries/7/partial", h.server.lastRequest(t).Path)
	assert.Equal(t, "Entry seven", h.m.Document().GetElementByID(page.MainContentID).InnerText())
}

func TestEntryForm_InvalidTitleIsNotSent(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)
	sent := h.server.requestCount()

	h.key("n")
	require.Equal(t, types.ModeForm, h.m.Mode())
	h.key("ctrl+s")

	assert.Equal(t, sent, h.server.requestCount())
	require.NotNil(t, h.m.entry)
	assert.Contains(t, h.m.entry.View(), "Please fill out this field.")

	title := lifecycle.Fields(h.m.Document().GetElementByID(EntryFormID))[0]
	assert.True(t, title.HasClass(lifecycle.ClassInvalid))
}

func TestEntryForm_SaveSuccess(t *testing.T) {
	h := newHarness(t)
	h.server.reply("POST "+api.EntriesPath, jsonReply(`{"success": true, "entry_id": 3, "message": "Entry created."}`))
	h.server.reply("GET "+HomePath, htmlReply(`<ul><li>Groceries</li></ul>`))
	h.start(120, 40)

	h.key("n")
	h.key("Groceries")
	h.key("tab")
	h.key("milk")
	h.key("ctrl+s")

	h.server.mu.Lock()
	var post api.Request
	for _, r := range h.server.requests {
		if r.Method == http.MethodPost {
			post = r
		}
	}
	h.server.mu.Unlock()
	assert.Equal(t, api.EntriesPath, post.Path)
	assert.Equal(t, SaveButtonID, post.Trigger)
	assert.Equal(t, "Groceries", post.Form.Get("title"))
	assert.Equal(t, "milk", post.Form.Get("content"))
	assert.Equal(t, "tok-1", post.Headers.Get(lifecycle.CSRFHeader))

	assert.Equal(t, "Entry created.", h.toastMessage())
	assert.Equal(t, types.ToastSuccess, h.toastKind())
	assert.Nil(t, h.m.entry, "form closes")
	assert.Equal(t, types.ModeNav, h.m.Mode())
	assert.Equal(t, HomePath, h.server.lastRequest(t).Path, "list reloads")
	assert.Equal(t, "• Groceries", h.m.Document().GetElementByID(page.MainContentID).InnerText())

	button := h.m.Document().GetElementByID(SaveButtonID)
	assert.Equal(t, "Save entry", button.TextContent(), "button restored")
}

func TestEntryForm_SaveRejected(t *testing.T) {
	h := newHarness(t)
	h.server.reply("POST "+api.EntriesPath, jsonReply(`{"success": false, "message": "Could not save."}`))
	h.start(120, 40)

	h.key("n")
	h.key("Draft")
	h.key("ctrl+s")

	assert.Equal(t, "Could not save.", h.toastMessage())
	assert.Equal(t, types.ToastError, h.toastKind())
	require.NotNil(t, h.m.entry, "form stays open")
	assert.False(t, h.m.entry.Submitting())
}

func TestEntryForm_DiscardNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("n")
	h.key("x")
	h.key("esc")
	_, ok := h.m.overlays.Current().(*overlay.ConfirmDialog)
	require.True(t, ok, "dirty form asks first")

	h.key("n")
	assert.Same(t, h.m.entry, h.m.overlays.Current(), "declining returns to the form")

	h.key("esc")
	h.key("y")
	assert.True(t, h.m.overlays.IsEmpty())
	assert.Nil(t, h.m.entry)
	assert.Equal(t, types.ModeNav, h.m.Mode())
}

func TestKeys_ThemeToggle(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("t")

	assert.Equal(t, styles.ThemeLight, h.m.styles.Theme, "styles follow the theme")
	saved, _, _ := h.store.Get(prefs.KeyTheme)
	assert.Equal(t, "light", saved)
	icon := h.m.Document().GetElementByID(theme.ToggleID).QueryTag("i")
	v, _ := icon.Attr("data-icon")
	assert.Equal(t, "moon", v)
}

func TestKeys_SidebarToggleWide(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("ctrl+b")

	assert.True(t, h.m.sidebar.Collapsed())
	assert.True(t, prefs.GetBool(h.store, prefs.KeySidebarCollapsed))
}

func TestKeys_SidebarOverlayNarrow(t *testing.T) {
	h := newHarness(t)
	h.start(80, 30)

	h.key("ctrl+b")
	assert.True(t, h.m.sidebar.Shown())

	h.key("esc")
	assert.False(t, h.m.sidebar.Shown(), "backdrop click closes it")
}

func TestKeys_DismissFlash(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)
	flash := h.m.Document().Query("alert")
	require.NotNil(t, flash)
	h.rec.Take()

	h.key("x")

	assert.Equal(t, "0", flash.Style("opacity"))
	h.deliverTimers()
	assert.False(t, flash.IsConnected(), "removed after the fade")
}

func TestKeys_ContentScroll(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("tab")
	require.Equal(t, types.ModeContent, h.m.Mode())
	h.key("jjjjjjjj")
	assert.Equal(t, len(h.m.contentLines())-1, h.m.scroll, "scroll clamps")
	h.key("k")
	assert.Equal(t, len(h.m.contentLines())-2, h.m.scroll)
}

func TestStatus_ConnectivityChangesAreAnnounced(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.update(network.StatusMsg{Online: true})
	assert.Empty(t, h.toastMessage(), "first check is silent")

	h.update(network.StatusMsg{Online: false})
	assert.Equal(t, "The server is unreachable.", h.toastMessage())
	assert.Equal(t, types.ToastWarning, h.toastKind())

	h.update(network.StatusMsg{Online: true})
	assert.Equal(t, "Connection to the server restored.", h.toastMessage())
}

type recordingSender struct {
	mu     sync.Mutex
	alerts []string
}

func (r *recordingSender) Notify(title, body string) error { return nil }

func (r *recordingSender) Alert(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, body)
	return nil
}

func TestDesktopMirror_ForwardsErrors(t *testing.T) {
	sender := &recordingSender{}
	h := newHarness(t, func(o *Options) {
		o.Config.Toast.Desktop = true
		o.Desktop = sender
	})
	h.server.fail("PAGE "+StartPath, errors.New("down"))

	h.start(120, 40)
	require.NotNil(t, h.m.Mirror())
	h.m.Mirror().Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, []string{"Something went wrong. Please try again."}, sender.alerts)
}

func TestFieldErrors_ReadsValidationMarks(t *testing.T) {
	doc := page.New()
	require.NoError(t, buildShell(doc))
	form := doc.GetElementByID(EntryFormID)

	mirrorEntry(form, overlay.EntrySubmittedMsg{Title: "", Content: "body", Tags: "a, b"})
	title := lifecycle.Fields(form)[0]
	title.AddClass(lifecycle.ClassInvalid)
	span := doc.CreateElement("span")
	span.SetClassName(lifecycle.ClassErrorMessage)
	span.SetText("Please fill out this field.")
	title.Parent().InsertBefore(span, title.NextSibling())

	assert.Equal(t, map[string]string{"title": "Please fill out this field."}, fieldErrors(form))

	values := formValues(form)
	assert.Equal(t, "body", values.Get("content"))
	assert.Equal(t, "a, b", values.Get("tags"))
}

func TestFlashKind(t *testing.T) {
	el := page.New().CreateElement("div")
	for class, want := range map[string]types.ToastKind{
		"alert alert-danger":  types.ToastError,
		"alert alert-error":   types.ToastError,
		"alert alert-warning": types.ToastWarning,
		"alert alert-success": types.ToastSuccess,
		"flash-message":       types.ToastInfo,
	} {
		el.SetClassName(class)
		assert.Equal(t, want, flashKind(el), class)
	}
}

func TestLinkLabel(t *testing.T) {
	el := page.New().CreateElement("a")
	require.NoError(t, el.SetInnerHTML(`<i data-icon="plus">+</i> New entry`))

	assert.Equal(t, "+ New entry", linkLabel(el, false))
	assert.Equal(t, "+", linkLabel(el, true))
}
