// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in screen.
package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ifsca-dit/intellichat-tui/internal/auth"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg reports the outcome of a login attempt.
type ResultMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldUserID = iota
	fieldPassword
	fieldCount
)

// Model is the sign-in form.
type Model struct {
	session *auth.Manager
	theme   *styles.Theme

	title  string
	width  int
	height int

	userID   textinput.Model
	password textinput.Model
	focused  int

	spin     spinner.Model
	inFlight bool
	errText  string

	// now is swappable for greeting tests.
	now func() time.Time
}

// New creates the sign-in form.
func New(session *auth.Manager, theme *styles.Theme, title string) *Model {
	userID := textinput.New()
	userID.Placeholder = "user ID"
	userID.CharLimit = 64
	userID.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return &Model{
		session:  session,
		theme:    theme,
		title:    title,
		userID:   userID,
		password: password,
		spin:     spin,
		now:      time.Now,
	}
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTheme swaps the theme, used when dark mode is toggled.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spin.Style = theme.Spinner
}

// Reset clears the form for the next sign-in, keeping the user ID so a
// logout and re-login does not retype it.
func (m *Model) Reset() {
	m.password.SetValue("")
	m.errText = ""
	m.inFlight = false
	m.focused = fieldUserID
	m.userID.Focus()
	m.password.Blur()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The form freezes while a login call runs; the submit control
		// equivalent of a disabled button.
		if m.inFlight {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			return m, m.submit()
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		}

	case ResultMsg:
		m.inFlight = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			m.password.SetValue("")
		}
		return m, nil

	case spinner.TickMsg:
		if m.inFlight {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == fieldUserID {
		m.userID, cmd = m.userID.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// cycleFocus moves input focus between the form fields.
func (m *Model) cycleFocus(delta int) {
	m.focused = (m.focused + delta + fieldCount) % fieldCount
	if m.focused == fieldUserID {
		m.userID.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.userID.Blur()
	}
}

// submit validates the form and starts the login call.
func (m *Model) submit() tea.Cmd {
	userID := strings.TrimSpace(m.userID.Value())
	password := m.password.Value()
	if userID == "" || password == "" {
		m.errText = "Please enter user ID and password"
		return nil
	}

	m.errText = ""
	m.inFlight = true

	session := m.session
	login := func() tea.Msg {
		return ResultMsg{Err: session.Login(context.Background(), userID, password)}
	}
	return tea.Batch(login, m.spin.Tick)
}

// InFlight reports whether a login call is running.
func (m *Model) InFlight() bool {
	return m.inFlight
}

// =============================================================================
// VIEW
// =============================================================================

// greeting picks the wording for the local hour.
func greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.LoginTitle.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(m.theme.LoginGreeting.Render(fmt.Sprintf("%s! Please sign in.", greeting(m.now()))))
	sb.WriteString("\n\n")

	sb.WriteString(m.theme.LoginLabel.Render("User ID"))
	sb.WriteString("\n")
	sb.WriteString(m.userID.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.LoginLabel.Render("Password"))
	sb.WriteString("\n")
	sb.WriteString(m.password.View())
	sb.WriteString("\n\n")

	switch {
	case m.inFlight:
		sb.WriteString(m.spin.View())
		sb.WriteString(" Signing in...")
	case m.errText != "":
		sb.WriteString(m.theme.LoginError.Render(m.errText))
	default:
		sb.WriteString(m.theme.HeaderSubtitle.Render("Press Enter to sign in"))
	}

	box := m.theme.LoginBox.Render(sb.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
