// IntelliChat TUI - A terminal client for the IntelliChat document assistant.
//
// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ifsca-dit/intellichat-tui/internal/apiclient"
	"github.com/ifsca-dit/intellichat-tui/internal/auth"
	"github.com/ifsca-dit/intellichat-tui/internal/config"
	"github.com/ifsca-dit/intellichat-tui/internal/storage"
	chatui "github.com/ifsca-dit/intellichat-tui/internal/ui/chat"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/login"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// SCREENS
// =============================================================================

type screen int

const (
	screenLogin screen = iota
	screenChat
)

// appModel routes between the login and chat screens on session state.
type appModel struct {
	cfg     *config.Config
	prefs   *storage.PrefStore
	session *auth.Manager
	theme   *styles.Theme

	screen screen
	login  *login.Model
	chat   *chatui.Model

	width  int
	height int
}

func newAppModel(cfg *config.Config, prefs *storage.PrefStore, session *auth.Manager, api *apiclient.Client) *appModel {
	theme := styles.NewTheme(prefs.GetBool(storage.KeyDarkMode))

	app := &appModel{
		cfg:     cfg,
		prefs:   prefs,
		session: session,
		theme:   theme,
		login:   login.New(session, theme, cfg.UI.AppTitle),
		chat:    chatui.New(session, api, cfg, theme),
	}

	// A valid stored token skips the login screen.
	session.Restore()
	if session.Authenticated() {
		app.screen = screenChat
		app.chat.RefreshIdentity()
	}
	return app
}

// Init implements tea.Model.
func (a *appModel) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, a.login.Init(), a.chat.Init())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		a.chat.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case login.ResultMsg:
		model, cmd := a.login.Update(msg)
		a.login = model
		if msg.Err == nil {
			a.screen = screenChat
			a.chat.RefreshIdentity()
		}
		return a, cmd

	case chatui.LogoutRequestMsg:
		a.session.Logout()
		a.chat.Reset()
		a.login.Reset()
		a.screen = screenLogin
		return a, nil

	case chatui.ToggleDarkModeMsg:
		return a, a.toggleDarkMode()
	}

	switch a.screen {
	case screenLogin:
		model, cmd := a.login.Update(msg)
		a.login = model
		return a, cmd
	default:
		model, cmd := a.chat.Update(msg)
		a.chat = model
		return a, cmd
	}
}

// toggleDarkMode flips the theme, restyles both screens, and persists the
// preference.
func (a *appModel) toggleDarkMode() tea.Cmd {
	a.theme = styles.NewTheme(!a.theme.IsDark)
	a.login.SetTheme(a.theme)
	a.chat.SetTheme(a.theme)

	prefs := a.prefs
	isDark := a.theme.IsDark
	return func() tea.Msg {
		// Persist failure is tolerated; the toggle still applies this run.
		_ = prefs.SetBool(storage.KeyDarkMode, isDark)
		return nil
	}
}

// View implements tea.Model.
func (a *appModel) View() string {
	if a.screen == screenLogin {
		return a.login.View()
	}
	return a.chat.View()
}

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	cfg := config.Global()

	prefs, err := storage.NewPrefStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open preference store: %v\n", err)
		os.Exit(1)
	}

	api := apiclient.New(cfg.BaseURL()).WithTimeout(cfg.Timeout())
	session := auth.NewManager(prefs, api)

	app := newAppModel(cfg, prefs, session, api)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
