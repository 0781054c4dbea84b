// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the application title bar with the signed-in identity.
type Header struct {
	Title      string // Application title
	UserID     string // Signed-in user, empty before login
	Department string // User's department, when the backend provides one
	Width      int    // Available width
	theme      *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme, title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetIdentity updates the signed-in identity shown on the right.
func (h *Header) SetIdentity(userID, department string) {
	h.UserID = userID
	h.Department = department
}

// SetTheme swaps the theme, used when dark mode is toggled.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// View renders the header line.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render(h.Title)

	identity := ""
	if h.UserID != "" {
		label := h.UserID
		if h.Department != "" {
			label += " · " + h.Department
		}
		identity = h.theme.HeaderSubtitle.Render(label)
	}

	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(identity) - 4
	if gap < 1 {
		gap = 1
	}

	line := title + strings.Repeat(" ", gap) + identity
	return h.theme.Header.Width(h.Width).Render(line)
}
