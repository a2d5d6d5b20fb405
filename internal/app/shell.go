package app

import (
	"net/url"
	"strings"

	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
)

// Page elements the shell is built from.
const (
	EntryFormID  = "entry-form"
	SaveButtonID = "save-form"
	HomePath     = "/entries/partial"
	StartPath    = "/entries/"
)

const shellMarkup = `
<header class="app-header">
  <button id="sidebar-toggle"><i data-icon="menu"></i></button>
  <span class="app-title">Eureka</span>
  <button id="theme-toggle"><i data-icon="moon"></i></button>
</header>
<aside id="sidebar">
  <nav class="sidebar-nav">
    <a class="sidebar-nav-link active" hx-get="/entries/partial"><i data-icon="file-text"></i> Entries</a>
    <a class="sidebar-nav-link" hx-get="/entries/new/partial"><i data-icon="plus"></i> New entry</a>
    <a class="sidebar-nav-link" hx-get="/entries/trash/partial"><i data-icon="trash-2"></i> Trash</a>
  </nav>
</aside>
<div class="app-content">
  <div id="flash-container"></div>
  <main id="main-content"></main>
</div>
<form id="entry-form" hx-post="/entries/">
  <input name="title" required maxlength="200">
  <textarea name="content"></textarea>
  <input name="tags">
  <button id="save-form" type="submit">Save entry</button>
</form>`

func buildShell(doc *page.Document) error {
	return doc.Body.SetInnerHTML(shellMarkup)
}

// mirrorEntry copies the overlay's input into the page form so the page
// validation sees what the user typed.
func mirrorEntry(form *page.Element, v overlay.EntrySubmittedMsg) {
	for _, field := range lifecycle.Fields(form) {
		name, _ := field.Attr("name")
		var value string
		switch name {
		case overlay.FieldTitle:
			value = v.Title
		case overlay.FieldContent:
			value = v.Content
		case overlay.FieldTags:
			value = v.Tags
		default:
			continue
		}
		if field.Tag == "textarea" {
			field.SetText(value)
		} else {
			field.SetAttr("value", value)
		}
	}
}

// fieldErrors collects the messages page validation left next to invalid
// fields, keyed by field name.
func fieldErrors(form *page.Element) map[string]string {
	errs := map[string]string{}
	for _, field := range lifecycle.Fields(form) {
		if !field.HasClass(lifecycle.ClassInvalid) {
			continue
		}
		name, _ := field.Attr("name")
		if next := field.NextSibling(); next != nil && next.HasClass(lifecycle.ClassErrorMessage) {
			errs[name] = next.TextContent()
		}
	}
	return errs
}

// formValues encodes the page form the way a browser would submit it.
func formValues(form *page.Element) url.Values {
	values := url.Values{}
	for _, field := range lifecycle.Fields(form) {
		if name, ok := field.Attr("name"); ok && name != "" {
			values.Set(name, lifecycle.FieldValue(field))
		}
	}
	return values
}

// flashKind reads the message kind from a flash's alert-* class.
func flashKind(el *page.Element) types.ToastKind {
	for _, c := range el.Classes() {
		suffix, ok := strings.CutPrefix(c, "alert-")
		if !ok {
			continue
		}
		switch suffix {
		case "danger", "error":
			return types.ToastError
		case "success":
			return types.ToastSuccess
		case "warning":
			return types.ToastWarning
		}
	}
	return types.ToastInfo
}
