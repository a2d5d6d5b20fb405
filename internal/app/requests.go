package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
)

const loginHint = "Your session has expired. Run `eureka login` to sign in again."

type purpose int

const (
	purposeNavigate purpose = iota
	purposeSave
)

// Message types for async operations

type startPageMsg struct {
	resp *api.Response
	err  error
}

type responseMsg struct {
	ex      *lifecycle.Exchange
	resp    *api.Response
	err     error
	purpose purpose
}

// fetchStartPage loads the full start page for its csrf token, flash
// messages and main content.
func (m Model) fetchStartPage() tea.Cmd {
	server := m.server
	timeout := m.cfg.Server.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := server.FetchPage(ctx, StartPath)
		return startPageMsg{resp: resp, err: err}
	}
}

func (m Model) handleStartPage(msg startPageMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	switch {
	case errors.Is(msg.err, api.ErrUnauthorized):
		return m, m.notifier.Notify(loginHint, types.ToastWarning)
	case msg.err != nil:
		m.logger.Error("loading start page", "error", msg.err)
		return m, m.notifier.Notify(m.cfg.Messages.RequestError, types.ToastError)
	}

	if err := m.doc.ImportHTML(bytes.NewReader(msg.resp.Body)); err != nil {
		m.logger.Error("importing start page", "error", err)
		return m, m.notifier.Notify(m.cfg.Messages.RequestError, types.ToastError)
	}
	m.icons.Replace(m.doc.Body)
	return m, m.glue.StartFlash()
}

// send runs req in the background and reports back with a responseMsg.
func (m Model) send(ex *lifecycle.Exchange, req api.Request, p purpose) tea.Cmd {
	server := m.server
	timeout := m.cfg.Server.Timeout()
	req.Headers = ex.Headers.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := server.Do(ctx, req)
		return responseMsg{ex: ex, resp: resp, err: err, purpose: p}
	}
}

// navigate loads a partial into #main-content.
func (m *Model) navigate(path string) tea.Cmd {
	main := m.doc.GetElementByID(page.MainContentID)
	if main == nil {
		return nil
	}
	m.loading = true
	ex := lifecycle.NewExchange(main, http.MethodGet, path)
	begin := m.glue.Begin(ex)
	req := api.Request{
		Method:  http.MethodGet,
		Path:    path,
		Target:  page.MainContentID,
		Trigger: page.MainContentID,
	}
	return tea.Batch(begin, m.send(ex, req, purposeNavigate), m.spinner.Tick)
}

// submitEntry validates the entry through the page form and posts it.
func (m Model) submitEntry(v overlay.EntrySubmittedMsg) (tea.Model, tea.Cmd) {
	form := m.doc.GetElementByID(EntryFormID)
	if form == nil {
		return m, nil
	}
	mirrorEntry(form, v)

	ok, cmd := m.glue.Validate(form)
	if !ok {
		if m.entry != nil {
			m.entry.SetErrors(fieldErrors(form))
		}
		return m, cmd
	}

	var busy tea.Cmd
	if m.entry != nil {
		m.entry.SetErrors(nil)
		busy = m.entry.SetSubmitting(true)
	}

	ex := lifecycle.NewExchange(form, http.MethodPost, api.EntriesPath)
	begin := m.glue.Begin(ex)
	req := api.Request{
		Method:  http.MethodPost,
		Path:    api.EntriesPath,
		Form:    formValues(form),
		Trigger: SaveButtonID,
		Target:  EntryFormID,
	}
	return m, tea.Batch(cmd, begin, busy, m.send(ex, req, purposeSave))
}

func (m Model) handleResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	ex := msg.ex
	if msg.resp != nil {
		ex.Status = msg.resp.Status
		ex.Body = msg.resp.Body
	}
	if msg.purpose == purposeNavigate {
		m.loading = false
	} else if m.entry != nil {
		m.entry.SetSubmitting(false)
	}

	switch {
	case errors.Is(msg.err, api.ErrUnauthorized):
		ex.Status = http.StatusUnauthorized
		done := m.glue.Complete(ex, nil)
		// The login hint replaces the generic error toast.
		return m, tea.Batch(done, m.notifier.Notify(loginHint, types.ToastWarning))
	case msg.err != nil:
		ex.Err = msg.err
		return m, m.glue.Complete(ex, nil)
	}

	if loc, ok := api.Redirect(msg.resp); ok {
		done := m.glue.Complete(ex, nil)
		m.closeEntryForm()
		next := m.navigate(loc)
		return m, tea.Batch(done, next)
	}

	if msg.resp.IsJSON() {
		done := m.glue.Complete(ex, nil)
		if msg.purpose == purposeSave && ex.Status == http.StatusOK && saved(msg.resp.Body) {
			m.closeEntryForm()
			next := m.navigate(HomePath)
			return m, tea.Batch(done, next)
		}
		return m, done
	}

	main := m.doc.GetElementByID(page.MainContentID)
	swap := func() error {
		if err := main.SetInnerHTML(string(msg.resp.Body)); err != nil {
			return err
		}
		m.scroll = 0
		if msg.purpose == purposeNavigate {
			m.path = ex.Path
		}
		return nil
	}
	completeEx := ex
	if msg.purpose == purposeSave {
		// The server answered the form with markup, usually the form with
		// its own errors; show it in the content area.
		m.closeEntryForm()
		done := m.glue.Complete(ex, nil)
		completeEx = lifecycle.NewExchange(main, ex.Method, ex.Path)
		completeEx.Status = ex.Status
		completeEx.Body = ex.Body
		swapped := m.glue.Complete(completeEx, swap)
		return m, tea.Batch(done, swapped)
	}
	// swap writes to m, so it has to run before m is returned.
	cmd := m.glue.Complete(completeEx, swap)
	return m, cmd
}

func (m *Model) closeEntryForm() {
	if m.entry == nil {
		return
	}
	m.overlays.Clear()
	m.afterOverlayClosed()
}

// saved reports whether a JSON reply announces success.
func saved(body []byte) bool {
	var reply struct {
		Success bool `json:"success"`
	}
	return json.Unmarshal(body, &reply) == nil && reply.Success
}
