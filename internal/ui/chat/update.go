// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	chatctl "github.com/ifsca-dit/intellichat-tui/internal/chat"
	"github.com/ifsca-dit/intellichat-tui/internal/export"
	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.spin.Tick)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case chatctl.AnswerMsg:
		m.controller.HandleAnswer(msg)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case chatctl.AnswerErrMsg:
		m.controller.HandleError(msg)
		m.banner.Show(m.controller.Banner())
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case chatctl.SlowResponseMsg:
		m.controller.HandleSlowResponse(msg)
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.exportNotice = "Export failed: " + msg.Err.Error()
		} else {
			m.exportNotice = "Exported to " + msg.Path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.controller.InFlight() {
			m.refreshViewport()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes key presses.
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	// The help overlay swallows input until dismissed.
	if m.help.Visible {
		m.help.Hide()
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m, m.send()

	case "ctrl+e":
		return m, m.exportTranscript(export.ExportMarkdown)

	case "ctrl+p":
		return m, m.exportTranscript(export.ExportHTML)

	case "ctrl+t":
		return m, func() tea.Msg { return ToggleDarkModeMsg{} }

	case "ctrl+h":
		m.help.Toggle()
		return m, nil

	case "ctrl+l":
		return m, func() tea.Msg { return LogoutRequestMsg{} }

	case "esc":
		m.banner.Clear()
		m.controller.ClearBanner()
		m.exportNotice = ""
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// The input stays read-only while an exchange runs.
	if m.controller.InFlight() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send submits the input box content as a question.
func (m *Model) send() tea.Cmd {
	cmd := m.controller.Send(m.input.Value())
	if cmd == nil {
		return nil
	}

	m.input.SetValue("")
	m.banner.Clear()
	m.exportNotice = ""
	m.refreshViewport()
	m.viewport.GotoBottom()
	return tea.Batch(cmd, m.spin.Tick)
}

// exportTranscript writes the settled transcript with the given format
// writer. Markdown is bound to ctrl+e; the print-ready HTML document,
// meant for the browser's print-to-PDF, sits on ctrl+p.
func (m *Model) exportTranscript(write func(*model.Transcript, *export.Options) (string, error)) tea.Cmd {
	tr := m.controller.Transcript()
	opts := export.DefaultOptions()
	opts.OutputDir = m.cfg.Export.OutputDir
	opts.FileURL = m.api.FileURL

	return func() tea.Msg {
		path, err := write(tr, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}
