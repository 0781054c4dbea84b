// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER COMPONENT
// =============================================================================

// ErrorBanner shows a dismissible top-level error line.
type ErrorBanner struct {
	Width int
	text  string
	theme *styles.Theme
}

// NewErrorBanner creates an empty banner.
func NewErrorBanner(theme *styles.Theme) *ErrorBanner {
	return &ErrorBanner{
		Width: 80,
		theme: theme,
	}
}

// Show sets the banner text.
func (b *ErrorBanner) Show(text string) {
	b.text = text
}

// Clear dismisses the banner.
func (b *ErrorBanner) Clear() {
	b.text = ""
}

// Visible reports whether the banner has text to show.
func (b *ErrorBanner) Visible() bool {
	return b.text != ""
}

// SetWidth updates the banner width.
func (b *ErrorBanner) SetWidth(width int) {
	b.Width = width
}

// SetTheme swaps the theme, used when dark mode is toggled.
func (b *ErrorBanner) SetTheme(theme *styles.Theme) {
	b.theme = theme
}

// View renders the banner. Empty when dismissed.
func (b *ErrorBanner) View() string {
	if b.text == "" {
		return ""
	}
	return b.theme.ErrorBanner.Width(b.Width - 2).Render(b.text)
}
