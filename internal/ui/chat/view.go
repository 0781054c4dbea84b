// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.help.Visible {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}

	var sb strings.Builder
	sb.WriteString(m.header.View())
	sb.WriteString("\n")

	if m.banner.Visible() {
		sb.WriteString(m.banner.View())
		sb.WriteString("\n")
	}

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	// Advisory / status row. Truncated by display width, not bytes, so a
	// long export path never wraps the row.
	switch {
	case m.controller.SlowResponseVisible():
		sb.WriteString(m.theme.AdvisoryText.Render(runewidth.Truncate(SlowResponseNotice, m.width-2, "...")))
	case m.exportNotice != "":
		sb.WriteString(m.theme.HeaderSubtitle.Render(runewidth.Truncate(m.exportNotice, m.width-2, "...")))
	}
	sb.WriteString("\n")

	sb.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.inputView()))
	sb.WriteString("\n")
	sb.WriteString(m.statusBar.View())

	return sb.String()
}

// inputView renders the prompt row, grayed out while an exchange runs.
func (m *Model) inputView() string {
	if m.controller.InFlight() {
		return m.theme.InputPlaceholder.Render("Waiting for answer...")
	}
	return m.theme.InputPrompt.Render("> ") + m.input.View()
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	var sb strings.Builder
	for _, msg := range m.controller.Transcript().History() {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
}

// renderMessage renders one message bubble with its label row.
func (m *Model) renderMessage(msg *model.Message) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName()) + " " +
		m.theme.TimestampLabel.Render(msg.Timestamp.Format("15:04"))

	var body string
	switch {
	case msg.IsPending():
		body = m.theme.AssistantBubble.Render(m.spin.View() + " Thinking...")
	case msg.IsFailed():
		body = m.theme.FailedBubble.Render(msg.Content)
	case msg.Role == model.RoleUser:
		body = m.theme.UserBubble.Render(msg.Content)
	default:
		body = m.theme.AssistantBubble.Render(m.renderAnswer(msg))
	}

	return label + "\n" + body + "\n"
}

// renderAnswer renders an assistant answer with markdown, citations, and the
// confidence line.
func (m *Model) renderAnswer(msg *model.Message) string {
	content := msg.Content
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}

	var sb strings.Builder
	sb.WriteString(content)

	if sources := msg.UniqueSources(); len(sources) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.SourcesHeading.Render("Sources"))
		for _, src := range sources {
			sb.WriteString("\n  ")
			sb.WriteString(m.theme.SourceLink.Render(m.api.FileURL(src.FileName)))
			sb.WriteString(m.theme.TimestampLabel.Render(fmt.Sprintf(" (page %d)", src.Page)))
		}
	}

	if msg.Confidence != nil {
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.ConfidenceText.Render(
			fmt.Sprintf("Confidence: %.0f%%", *msg.Confidence*100)))
	}

	return sb.String()
}
