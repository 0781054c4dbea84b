// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	palette Palette

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	FailedBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	TimestampLabel  lipgloss.Style

	// ==========================================================================
	// CITATION STYLES
	// ==========================================================================

	SourcesHeading lipgloss.Style
	SourceLink     lipgloss.Style
	ConfidenceText lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// LOGIN FORM STYLES
	// ==========================================================================

	LoginBox      lipgloss.Style
	LoginTitle    lipgloss.Style
	LoginGreeting lipgloss.Style
	LoginLabel    lipgloss.Style
	LoginError    lipgloss.Style

	// ==========================================================================
	// STATUS AND FEEDBACK STYLES
	// ==========================================================================

	ErrorBanner  lipgloss.Style
	AdvisoryText lipgloss.Style
	Spinner      lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY STYLES
	// ==========================================================================

	HelpBox     lipgloss.Style
	HelpTitle   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpContact lipgloss.Style
}

// NewTheme creates a theme for the given mode, with the palette degraded
// to the terminal's detected color profile.
func NewTheme(isDark bool) *Theme {
	return NewThemeWithProfile(isDark, termenv.ColorProfile())
}

// NewThemeWithProfile creates a theme for an explicit color profile.
func NewThemeWithProfile(isDark bool, profile termenv.Profile) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	if isDark {
		t.palette = DarkPalette.Degrade(profile)
	} else {
		t.palette = LightPalette.Degrade(profile)
	}
	t.initStyles()
	return t
}

// Palette returns the resolved color set for the current mode.
func (t *Theme) Palette() Palette {
	return t.palette
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.AssistantBubbleFg).
		Background(p.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.FailedBubble = t.AssistantBubble.
		Foreground(p.Danger).
		BorderForeground(p.Danger)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary)

	t.TimestampLabel = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Citations
	t.SourcesHeading = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary)

	t.SourceLink = lipgloss.NewStyle().
		Foreground(p.Primary).
		Underline(true)

	t.ConfidenceText = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Login form
	t.LoginBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 4)

	t.LoginTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.LoginGreeting = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.LoginLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	t.LoginError = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	// Status and feedback
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Danger).
		Padding(0, 1)

	t.AdvisoryText = lipgloss.NewStyle().
		Foreground(p.Warning).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Primary)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	// Help overlay
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Primary).
		Padding(1, 3)

	t.HelpTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(p.Text)

	t.HelpContact = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)
}

// SetSize updates the stored layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
