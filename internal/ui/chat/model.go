// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/ifsca-dit/intellichat-tui/internal/apiclient"
	"github.com/ifsca-dit/intellichat-tui/internal/auth"
	chatctl "github.com/ifsca-dit/intellichat-tui/internal/chat"
	"github.com/ifsca-dit/intellichat-tui/internal/config"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/components"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// SlowResponseNotice is shown when an exchange runs past the advisory
// threshold.
const SlowResponseNotice = "There is too much load on me, please excuse me a moment."

// =============================================================================
// MESSAGES
// =============================================================================

// LogoutRequestMsg asks the application to end the session.
type LogoutRequestMsg struct{}

// ToggleDarkModeMsg asks the application to flip and persist the theme.
type ToggleDarkModeMsg struct{}

// ExportDoneMsg reports the outcome of a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat screen. It owns the widgets; the exchange protocol and
// the transcript live in the controller.
type Model struct {
	controller *chatctl.Controller
	api        *apiclient.Client
	session    *auth.Manager
	cfg        *config.Config
	theme      *styles.Theme

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	header    *components.Header
	statusBar *components.StatusBar
	banner    *components.ErrorBanner
	help      *components.HelpOverlay

	// renderer formats assistant markdown for the current theme and width.
	renderer *glamour.TermRenderer

	// exportNotice is a transient status line after Ctrl+E.
	exportNotice string
}

// shortcuts is the binding list shared by the status bar and help overlay.
var shortcuts = []components.Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+e", Desc: "export"},
	{Key: "ctrl+p", Desc: "print"},
	{Key: "ctrl+t", Desc: "theme"},
	{Key: "ctrl+h", Desc: "help"},
	{Key: "ctrl+l", Desc: "logout"},
	{Key: "ctrl+c", Desc: "quit"},
}

// New creates the chat screen.
func New(session *auth.Manager, api *apiclient.Client, cfg *config.Config, theme *styles.Theme) *Model {
	controller := chatctl.NewController(api, session.Token)
	if cfg.API.SlowResponseSecs > 0 {
		controller.WithSlowResponseAfter(cfg.SlowResponseAfter())
	}

	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	vp := viewport.New(80, 20)

	m := &Model{
		controller: controller,
		api:        api,
		session:    session,
		cfg:        cfg,
		theme:      theme,
		viewport:   vp,
		input:      input,
		spin:       spin,
		header:     components.NewHeader(theme, cfg.UI.AppTitle),
		statusBar:  components.NewStatusBar(theme, shortcuts),
		banner:     components.NewErrorBanner(theme),
		help:       components.NewHelpOverlay(theme, cfg.UI.SupportEmail, shortcuts),
	}
	m.header.SetIdentity(session.UserID(), session.Department())
	m.renderer = newRenderer(theme.IsDark, m.contentWidth())
	return m
}

// newRenderer builds a glamour renderer for the theme and width.
func newRenderer(isDark bool, width int) *glamour.TermRenderer {
	style := glamour.WithStandardStyle("light")
	if isDark {
		style = glamour.WithStandardStyle("dark")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return renderer
}

// SetSize lays the widgets out for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.banner.SetWidth(width)
	m.input.Width = width - 6

	// Header, banner row, advisory row, input box, status bar.
	chrome := 7
	if m.banner.Visible() {
		chrome += 3
	}
	m.viewport.Width = width
	m.viewport.Height = height - chrome
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}

	m.renderer = newRenderer(m.theme.IsDark, m.contentWidth())
	m.refreshViewport()
}

// SetTheme swaps the theme and restyles every widget in place.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spin.Style = theme.Spinner
	m.header.SetTheme(theme)
	m.statusBar.SetTheme(theme)
	m.banner.SetTheme(theme)
	m.help.SetTheme(theme)
	m.renderer = newRenderer(theme.IsDark, m.contentWidth())
	m.refreshViewport()
}

// RefreshIdentity re-reads the signed-in identity after login.
func (m *Model) RefreshIdentity() {
	m.header.SetIdentity(m.session.UserID(), m.session.Department())
}

// Reset discards the session transcript, used on logout.
func (m *Model) Reset() {
	m.controller.Reset()
	m.banner.Clear()
	m.input.SetValue("")
	m.exportNotice = ""
	m.refreshViewport()
}

// contentWidth is the usable width for rendered message text.
func (m *Model) contentWidth() int {
	width := m.width - 10
	if width < 20 {
		width = 70
	}
	return width
}
