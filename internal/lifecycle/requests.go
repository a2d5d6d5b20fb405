package lifecycle

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/types"
)

// Classes the request handlers toggle.
const (
	ClassSpinner  = "spinner"
	ClassSwapping = "htmx-swapping"

	originalContentKey = "original-content"
)

func exchangeOf(e *page.Event) *Exchange {
	ex, _ := e.Detail.(*Exchange)
	return ex
}

func (g *Glue) addCSRF(e *page.Event) {
	ex := exchangeOf(e)
	if ex == nil {
		return
	}
	if token, ok := g.doc.Meta("csrf-token"); ok && token != "" {
		ex.Headers.Set(CSRFHeader, token)
		return
	}
	if g.cookies == nil {
		return
	}
	if token, ok := g.cookies.Cookie(g.opts.CSRFCookie); ok && token != "" {
		ex.Headers.Set(CSRFHeader, token)
	}
}

// busyButton is the target itself when it is a button, else its first
// descendant button.
func busyButton(target *page.Element) *page.Element {
	if target == nil {
		return nil
	}
	if target.Tag == "button" {
		return target
	}
	return target.QueryTag("button")
}

func (g *Glue) showLoading(e *page.Event) {
	button := busyButton(e.Target)
	if button == nil || button.Query(ClassSpinner) != nil {
		return
	}

	button.SetData(originalContentKey, button.TextContent())
	g.saved[button] = button.Children()

	spinner := g.doc.CreateElement("span")
	spinner.SetClassName(ClassSpinner)
	spinner.SetStyle("margin-right", "1")
	button.ReplaceChildren(spinner, page.NewText(" "+g.opts.LoadingText))
}

func (g *Glue) restoreLoading(e *page.Event) {
	// A swap may have detached buttons that were busy; forget them.
	for b := range g.saved {
		if !b.IsConnected() {
			delete(g.saved, b)
		}
	}

	button := busyButton(e.Target)
	if button == nil {
		return
	}
	original, ok := button.Data(originalContentKey)
	if !ok {
		return
	}
	if nodes, kept := g.saved[button]; kept {
		button.ReplaceChildren(nodes...)
		delete(g.saved, button)
	} else {
		button.SetText(original)
	}
	button.DeleteData(originalContentKey)
}

// jsonReply is the body the server sends for form posts.
type jsonReply struct {
	Message any `json:"message"`
	Success any `json:"success"`
}

func (g *Glue) toastJSON(e *page.Event) {
	ex := exchangeOf(e)
	if ex == nil || ex.Err != nil || ex.Status != http.StatusOK {
		return
	}
	var reply jsonReply
	if err := json.Unmarshal(ex.Body, &reply); err != nil {
		// Not JSON; nothing to announce.
		return
	}
	if !truthy(reply.Message) {
		return
	}
	kind := types.ToastError
	if truthy(reply.Success) {
		kind = types.ToastSuccess
	}
	e.Defer(g.toaster.Notify(fmt.Sprint(reply.Message), kind))
}

func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

func (g *Glue) toastError(e *page.Event) {
	if ex := exchangeOf(e); ex != nil {
		g.logger.Warn("request failed",
			"event", e.Type,
			"method", ex.Method,
			"path", ex.Path,
			"status", ex.Status,
			"error", ex.Err,
		)
	}
	e.Defer(g.toaster.Notify(g.opts.ErrorMessage, types.ToastError))
}

func (g *Glue) markSwapping(e *page.Event) {
	if e.Target != nil && e.Target.ID() == page.MainContentID {
		e.Target.AddClass(ClassSwapping)
	}
}

func (g *Glue) settleSwap(e *page.Event) {
	if g.icons != nil {
		g.icons.Replace(g.doc.Body)
	}
	if e.Target != nil && e.Target.ID() == page.MainContentID {
		e.Defer(g.sched.After(g.opts.SwapSettle, swapSettledMsg{id: g.id, target: e.Target}))
	}
	e.Defer(g.StartFlash())
}
