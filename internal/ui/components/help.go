// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY COMPONENT
// =============================================================================

// HelpOverlay is the modal help panel listing key bindings and the support
// contact.
type HelpOverlay struct {
	Visible      bool
	SupportEmail string
	Bindings     []Shortcut
	theme        *styles.Theme
}

// NewHelpOverlay creates the help overlay.
func NewHelpOverlay(theme *styles.Theme, supportEmail string, bindings []Shortcut) *HelpOverlay {
	return &HelpOverlay{
		SupportEmail: supportEmail,
		Bindings:     bindings,
		theme:        theme,
	}
}

// Toggle flips visibility.
func (h *HelpOverlay) Toggle() {
	h.Visible = !h.Visible
}

// Hide closes the overlay.
func (h *HelpOverlay) Hide() {
	h.Visible = false
}

// SetTheme swaps the theme, used when dark mode is toggled.
func (h *HelpOverlay) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// View renders the overlay panel. Empty when hidden.
func (h *HelpOverlay) View() string {
	if !h.Visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(h.theme.HelpTitle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	keyWidth := 0
	for _, b := range h.Bindings {
		if w := lipgloss.Width(b.Key); w > keyWidth {
			keyWidth = w
		}
	}

	for _, b := range h.Bindings {
		key := h.theme.HelpKey.Render(fmt.Sprintf("%-*s", keyWidth, b.Key))
		sb.WriteString(key)
		sb.WriteString("  ")
		sb.WriteString(h.theme.HelpDesc.Render(b.Desc))
		sb.WriteString("\n")
	}

	if h.SupportEmail != "" {
		sb.WriteString("\n")
		sb.WriteString(h.theme.HelpContact.Render("Questions? Contact " + h.SupportEmail))
	}

	return h.theme.HelpBox.Render(sb.String())
}
