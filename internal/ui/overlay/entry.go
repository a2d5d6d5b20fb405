package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// Field names, matching the server form.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTags    = "tags"
)

// TitleMaxLength bounds the entry title.
const TitleMaxLength = 200

// EntrySubmittedMsg carries the form values when the user saves.
type EntrySubmittedMsg struct {
	Title   string
	Content string
	Tags    string
}

// DiscardRequestedMsg asks whether unsaved input may be thrown away.
type DiscardRequestedMsg struct{}

const (
	focusTitle = iota
	focusContent
	focusTags
	focusSubmit
	focusCount
)

// EntryForm is the new-entry dialog. It only collects input; validation and
// submission happen against the page form.
type EntryForm struct {
	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	spinner spinner.Model

	focus      int
	errors     map[string]string
	submitting bool
	styles     *styles.Styles
}

// NewEntryForm creates an empty form with the title focused.
func NewEntryForm(s *styles.Styles) *EntryForm {
	ti := textinput.New()
	ti.Placeholder = "Entry title..."
	ti.CharLimit = TitleMaxLength
	ti.Width = 56
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.SetWidth(56)
	ta.SetHeight(6)

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"
	tags.Width = 56

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &EntryForm{
		title:   ti,
		content: ta,
		tags:    tags,
		spinner: sp,
		focus:   focusTitle,
		errors:  map[string]string{},
		styles:  s,
	}
}

// Init initializes the overlay
func (f *EntryForm) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current input.
func (f *EntryForm) Values() EntrySubmittedMsg {
	return EntrySubmittedMsg{
		Title:   strings.TrimSpace(f.title.Value()),
		Content: f.content.Value(),
		Tags:    strings.TrimSpace(f.tags.Value()),
	}
}

// Dirty reports whether anything has been typed.
func (f *EntryForm) Dirty() bool {
	v := f.Values()
	return v.Title != "" || strings.TrimSpace(v.Content) != "" || v.Tags != ""
}

// SetErrors replaces the per-field validation messages.
func (f *EntryForm) SetErrors(errs map[string]string) {
	f.errors = map[string]string{}
	for k, v := range errs {
		f.errors[k] = v
	}
}

// SetSubmitting shows or hides the busy state. Input is ignored while busy.
func (f *EntryForm) SetSubmitting(busy bool) tea.Cmd {
	f.submitting = busy
	if busy {
		return f.spinner.Tick
	}
	return nil
}

// Submitting reports whether a save is in flight.
func (f *EntryForm) Submitting() bool {
	return f.submitting
}

func (f *EntryForm) setFocus(i int) {
	f.focus = (i + focusCount) % focusCount
	f.title.Blur()
	f.content.Blur()
	f.tags.Blur()
	switch f.focus {
	case focusTitle:
		f.title.Focus()
	case focusContent:
		f.content.Focus()
	case focusTags:
		f.tags.Focus()
	}
}

func (f *EntryForm) submit() tea.Cmd {
	values := f.Values()
	return func() tea.Msg { return values }
}

// Update handles messages
func (f *EntryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !f.submitting {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(tick)
		return f, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if ok {
		if f.submitting {
			return f, nil
		}
		switch key.String() {
		case "esc":
			if f.Dirty() {
				return f, func() tea.Msg { return DiscardRequestedMsg{} }
			}
			return f, Close
		case "ctrl+s":
			return f, f.submit()
		case "tab":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab":
			f.setFocus(f.focus - 1)
			return f, nil
		case "enter":
			switch f.focus {
			case focusSubmit:
				return f, f.submit()
			case focusTitle, focusTags:
				f.setFocus(f.focus + 1)
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusContent:
		f.content, cmd = f.content.Update(msg)
	case focusTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return f, cmd
}

func (f *EntryForm) label(text string, focused bool, field string) string {
	style := f.styles.FieldLabel
	if f.errors[field] != "" {
		style = f.styles.FieldInvalid
	}
	if focused {
		style = style.Foreground(f.styles.Palette.Blue)
	}
	return style.Render(text)
}

func (f *EntryForm) fieldError(field string) string {
	if msg := f.errors[field]; msg != "" {
		return "\n" + f.styles.ErrorMessage.Render(msg)
	}
	return ""
}

// View renders the form
func (f *EntryForm) View() string {
	var b strings.Builder

	b.WriteString(f.label("Title", f.focus == focusTitle, FieldTitle) + "\n")
	b.WriteString(f.title.View())
	b.WriteString(f.fieldError(FieldTitle) + "\n\n")

	b.WriteString(f.label("Content", f.focus == focusContent, FieldContent) + "\n")
	b.WriteString(f.content.View())
	b.WriteString(f.fieldError(FieldContent) + "\n\n")

	b.WriteString(f.label("Tags", f.focus == focusTags, FieldTags) + "\n")
	b.WriteString(f.tags.View())
	b.WriteString(f.fieldError(FieldTags) + "\n\n")

	switch {
	case f.submitting:
		b.WriteString(f.spinner.View() + " Saving...")
	case f.focus == focusSubmit:
		b.WriteString(f.styles.Button.Render("Save entry"))
	default:
		b.WriteString(f.styles.MenuItem.Render("[ Save entry ]"))
	}

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " fields",
		f.styles.MenuKey.Render("Ctrl+S") + " save",
		f.styles.MenuKey.Render("Esc") + " cancel",
	}
	b.WriteString("\n" + f.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

// Title returns the overlay title
func (f *EntryForm) Title() string {
	return "New entry"
}

// Size returns the overlay dimensions
func (f *EntryForm) Size() (width, height int) {
	return 64, 24
}
