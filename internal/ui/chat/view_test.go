// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifsca-dit/intellichat-tui/internal/apiclient"
	"github.com/ifsca-dit/intellichat-tui/internal/auth"
	chatctl "github.com/ifsca-dit/intellichat-tui/internal/chat"
	"github.com/ifsca-dit/intellichat-tui/internal/config"
	"github.com/ifsca-dit/intellichat-tui/internal/storage"
	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

func newTestScreen(t *testing.T, handler http.HandlerFunc) *Model {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := storage.NewPrefStoreWithPath(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)

	api := apiclient.New(server.URL)
	session := auth.NewManager(store, api)

	m := New(session, api, config.Default(), styles.NewTheme(false))
	// The screen under test has no stored token; inject one. The short
	// advisory threshold keeps the tick command from sleeping for real.
	m.controller = chatctl.NewController(api, func() string { return "test-token" }).
		WithSlowResponseAfter(10 * time.Millisecond)
	m.SetSize(100, 30)
	return m
}

func runCmds(m *Model, cmd tea.Cmd) *Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			m = runCmds(m, sub)
		}
	case spinner.TickMsg:
		// Spinner ticks self-perpetuate; feed one and stop.
		m, _ = m.Update(msg)
	case nil:
	default:
		m, cmd = m.Update(msg)
		m = runCmds(m, cmd)
	}
	return m
}

// =============================================================================
// VIEW STATE TESTS
// =============================================================================

func TestView_AdvisoryShownWhileSlow(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"A"}`))
	})

	// Force the advisory without settling the exchange.
	m.controller.Send("Q")
	m.controller.HandleSlowResponse(chatctl.SlowResponseMsg{Generation: 1})

	assert.Contains(t, m.View(), "too much load")
}

func TestView_InputFrozenWhileInFlight(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"A"}`))
	})

	m.controller.Send("Q")
	require.True(t, m.controller.InFlight())

	assert.Contains(t, m.View(), "Waiting for answer...")

	// Typing while frozen is dropped.
	before := m.input.Value()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, before, m.input.Value())
}

func TestSend_RoundTripRendersAnswer(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"The answer.","sources":[{"file_name":"f.pdf","page":2}],"confidence":0.9}`))
	})
	m.input.SetValue("What is it?")
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmds(m, cmd)

	assert.Empty(t, m.input.Value(), "input clears on send")
	view := m.View()
	assert.NotContains(t, view, "Waiting for answer...")
	assert.Contains(t, view, "f.pdf", "the cited file link is shown")
	assert.Contains(t, view, "Confidence: 90%")
}

func TestBanner_ShownOnFailureAndDismissed(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"retriever unavailable"}`))
	})

	cmd := m.controller.Send("Q")
	m = runCmds(m, cmd)

	assert.Contains(t, m.View(), "Failed to get response: retriever unavailable")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Failed to get response")
}

func TestHelpOverlay_ToggleAndDismiss(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "support@intellichat.local")

	// Any key closes the overlay.
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestExport_MarkdownAndPrintableHTML(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"The answer.","sources":[{"file_name":"f.pdf","page":2}],"confidence":0.9}`))
	})
	m.cfg.Export.OutputDir = t.TempDir()
	m.input.SetValue("What is it?")
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmds(m, cmd)

	m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = runCmds(m, cmd)
	assert.Contains(t, m.exportNotice, "Exported to ")
	assert.Contains(t, m.exportNotice, ".md")

	m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = runCmds(m, cmd)
	assert.Contains(t, m.exportNotice, ".html")

	written, err := filepath.Glob(filepath.Join(m.cfg.Export.OutputDir, "*"))
	require.NoError(t, err)
	assert.Len(t, written, 2)
}

func TestReset_ClearsScreenState(t *testing.T) {
	m := newTestScreen(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"boom"}`))
	})

	m = runCmds(m, m.controller.Send("Q"))
	m.input.SetValue("half-typed")
	require.NotZero(t, m.controller.Transcript().MessageCount())

	m.Reset()

	assert.Zero(t, m.controller.Transcript().MessageCount())
	assert.Empty(t, m.input.Value())
	assert.NotContains(t, m.View(), "Failed to get response")
}
