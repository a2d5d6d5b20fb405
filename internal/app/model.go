// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/config"
	"github.com/eureka-app/eureka-tui/internal/desktop"
	"github.com/eureka-app/eureka-tui/internal/icons"
	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/sched"
	"github.com/eureka-app/eureka-tui/internal/services/network"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
	"github.com/eureka-app/eureka-tui/internal/ui/sidebar"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
	"github.com/eureka-app/eureka-tui/internal/ui/theme"
	"github.com/eureka-app/eureka-tui/internal/ui/toast"
)

// Server is the part of the API client the shell talks to.
type Server interface {
	Do(ctx context.Context, r api.Request) (*api.Response, error)
	FetchPage(ctx context.Context, path string) (*api.Response, error)
	Cookie(name string) (string, bool)
}

// Options wires a Model. Config, Server and Prefs are required.
type Options struct {
	Config *config.Config
	Server Server
	Prefs  prefs.Store

	// Sched defaults to real timers.
	Sched sched.Scheduler
	// DetectDark defaults to asking the terminal.
	DetectDark func() bool
	// Checker enables the online indicator when set.
	Checker *network.StatusChecker
	// Desktop receives mirrored toasts when toast.desktop is on. Nil uses
	// the system notifier.
	Desktop desktop.Sender
	// User is shown in the status bar.
	User string

	Logger *slog.Logger
}

// Model is the main application state
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	// Page and the controllers attached to it
	doc      *page.Document
	server   Server
	icons    *icons.Glyphs
	notifier *toast.Notifier
	glue     *lifecycle.Glue
	theme    *theme.Controller
	sidebar  *sidebar.Controller
	checker  *network.StatusChecker
	mirror   *desktop.Mirror

	// UI state
	styles   *styles.Styles
	toasts   *toast.Renderer
	overlays *overlay.Stack
	entry    *overlay.EntryForm
	keys     keyMap
	spinner  spinner.Model
	mode     types.Mode

	path    string
	loading bool
	scroll  int
	online  bool
	checked bool
	user    string

	// Terminal size
	width  int
	height int
}

// New builds the page shell and attaches every controller to it.
func New(opts Options) (Model, error) {
	if opts.Config == nil || opts.Server == nil || opts.Prefs == nil {
		return Model{}, fmt.Errorf("app: config, server and prefs are required")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := opts.Sched
	if s == nil {
		s = sched.Tick{}
	}
	detect := opts.DetectDark
	if detect == nil {
		detect = theme.DetectDark
	}

	doc := page.New()
	if err := buildShell(doc); err != nil {
		return Model{}, fmt.Errorf("build shell: %w", err)
	}

	glyphs := icons.New(icons.Set(cfg.Toast.Icons))

	content := toast.ContentText
	if cfg.Toast.AllowMarkup {
		content = toast.ContentMarkup
	}
	notifier := toast.New(doc, s, glyphs, toast.Options{
		RevealDelay:  cfg.Toast.RevealDelay(),
		DismissDelay: cfg.Toast.DismissDelay(),
		DefaultKind:  types.ParseToastKind(cfg.Toast.DefaultKind),
		Content:      content,
		Animate:      cfg.Toast.Animate,
	}, logger.With("component", "toast"))

	var mirror *desktop.Mirror
	if cfg.Toast.Desktop {
		mirror = desktop.NewMirror(opts.Desktop, logger.With("component", "desktop"))
		notifier.OnNotify(mirror.Forward)
	}

	glueOpts := lifecycle.DefaultOptions()
	glueOpts.ErrorMessage = cfg.Messages.RequestError
	glueOpts.FlashDismiss = cfg.Flash.Dismiss()
	glueOpts.FlashFade = cfg.Flash.Fade()
	glue := lifecycle.New(doc, notifier, s, glueOpts).
		WithIcons(glyphs).
		WithCookies(opts.Server).
		WithLogger(logger.With("component", "lifecycle"))
	glue.Install()

	st := styles.New()
	themes := theme.New(doc, opts.Prefs, glyphs, detect, logger.With("component", "theme"))
	themes.OnChange(func(t styles.Theme) {
		// Everything holding st picks up the new palette.
		*st = *styles.ForTheme(t)
	})
	*st = *styles.ForTheme(themes.Setup())

	side := sidebar.New(doc, opts.Prefs, sidebar.Options{
		Breakpoint:     cfg.Layout.Breakpoint,
		Width:          cfg.Layout.SidebarWidth,
		CollapsedWidth: cfg.Layout.SidebarCollapsedWidth,
	}, logger.With("component", "sidebar"))
	side.Setup(0)

	glyphs.Replace(doc.Body)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return Model{
		cfg:      cfg,
		logger:   logger,
		doc:      doc,
		server:   opts.Server,
		icons:    glyphs,
		notifier: notifier,
		glue:     glue,
		theme:    themes,
		sidebar:  side,
		checker:  opts.Checker,
		mirror:   mirror,
		styles:   st,
		toasts:   toast.NewRenderer(st),
		overlays: overlay.NewStack(),
		keys:     defaultKeys(),
		spinner:  sp,
		mode:     types.ModeNav,
		path:     HomePath,
		loading:  true,
		user:     opts.User,
	}, nil
}

// Init loads the start page and starts the reachability checks.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetchStartPage()}
	if m.checker != nil {
		cmds = append(cmds, m.checker.CheckCmd())
	}
	return tea.Batch(cmds...)
}

// Mirror returns the desktop notification mirror, nil when disabled.
func (m Model) Mirror() *desktop.Mirror {
	return m.mirror
}

// Document exposes the page the shell renders.
func (m Model) Document() *page.Document {
	return m.doc
}

// Notifier exposes the toast notifier.
func (m Model) Notifier() *toast.Notifier {
	return m.notifier
}

// Mode returns the current input focus.
func (m Model) Mode() types.Mode {
	return m.mode
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar.Resize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.overlays.IsEmpty() {
			return m.updateOverlay(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.entry != nil && m.entry.Submitting() {
			return m, m.overlays.Update(msg)
		}
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startPageMsg:
		return m.handleStartPage(msg)

	case responseMsg:
		return m.handleResponse(msg)

	case network.StatusMsg:
		return m.handleStatus(msg)

	case overlay.CloseOverlayMsg:
		m.overlays.Update(msg)
		m.afterOverlayClosed()
		return m, nil

	case overlay.DiscardRequestedMsg:
		return m, m.overlays.Push(overlay.NewConfirmDialog(
			discardTag, "Discard entry?", "Your changes will be lost.", m.styles))

	case overlay.ConfirmResult:
		m.overlays.Pop()
		if msg.Tag == discardTag && msg.Confirmed {
			m.overlays.Clear()
			m.afterOverlayClosed()
		}
		return m, nil

	case overlay.EntrySubmittedMsg:
		return m.submitEntry(msg)
	}

	cmds := []tea.Cmd{
		m.notifier.Update(msg),
		m.glue.Update(msg),
		m.overlays.Update(msg),
	}
	if m.checker != nil {
		cmds = append(cmds, m.checker.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

const discardTag = "discard-entry"

func (m *Model) afterOverlayClosed() {
	if m.overlays.IsEmpty() {
		m.entry = nil
		m.mode = types.ModeNav
	}
}

func (m Model) handleStatus(msg network.StatusMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.checked && m.online != msg.Online {
		if msg.Online {
			cmds = append(cmds, m.notifier.Notify("Connection to the server restored.", types.ToastInfo))
		} else {
			cmds = append(cmds, m.notifier.Notify("The server is unreachable.", types.ToastWarning))
		}
	}
	m.online = msg.Online
	m.checked = true
	if interval := m.cfg.Server.CheckInterval(); interval > 0 && m.checker != nil {
		cmds = append(cmds, m.checker.PollCmd(interval))
	}
	return m, tea.Batch(cmds...)
}
