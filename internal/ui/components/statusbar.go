// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom shortcut strip.
type StatusBar struct {
	Width     int
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar with the given shortcuts.
func NewStatusBar(theme *styles.Theme, shortcuts []Shortcut) *StatusBar {
	return &StatusBar{
		Width:     80,
		Shortcuts: shortcuts,
		theme:     theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetTheme swaps the theme, used when dark mode is toggled.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// View renders the shortcut strip, dropping entries that no longer fit.
func (s *StatusBar) View() string {
	var parts []string
	for _, sc := range s.Shortcuts {
		part := s.theme.ShortcutKey.Render(sc.Key) + " " + s.theme.ShortcutDesc.Render(sc.Desc)
		candidate := strings.Join(append(parts, part), "  ")
		if lipgloss.Width(candidate) > s.Width-2 {
			break
		}
		parts = append(parts, part)
	}

	return s.theme.StatusBar.Width(s.Width).Render(" " + strings.Join(parts, "  "))
}
