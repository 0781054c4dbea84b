// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for IntelliChat TUI.
//
// Dark mode is a user preference toggled at runtime and persisted, so colors
// are resolved per theme instead of relying on terminal background detection.
package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the resolved colors for one theme mode.
type Palette struct {
	// Accent colors
	Primary     lipgloss.Color
	PrimaryDeep lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color

	// Text
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Message bubbles
	UserBubbleBg      lipgloss.Color
	UserBubbleFg      lipgloss.Color
	AssistantBubbleBg lipgloss.Color
	AssistantBubbleFg lipgloss.Color
	BubbleBorder      lipgloss.Color
}

// LightPalette is the light-mode color set.
var LightPalette = Palette{
	Primary:     lipgloss.Color("#2563EB"),
	PrimaryDeep: lipgloss.Color("#1E40AF"),

	Success: lipgloss.Color("#059669"),
	Warning: lipgloss.Color("#D97706"),
	Danger:  lipgloss.Color("#E11D48"),

	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceDim:    lipgloss.Color("#F5F5F5"),
	SurfaceBright: lipgloss.Color("#FAFAFA"),

	Text:          lipgloss.Color("#1A1A1A"),
	TextSecondary: lipgloss.Color("#52525B"),
	TextMuted:     lipgloss.Color("#A1A1AA"),

	UserBubbleBg:      lipgloss.Color("#DBEAFE"),
	UserBubbleFg:      lipgloss.Color("#1E3A8A"),
	AssistantBubbleBg: lipgloss.Color("#F4F4F5"),
	AssistantBubbleFg: lipgloss.Color("#18181B"),
	BubbleBorder:      lipgloss.Color("#D4D4D8"),
}

// DarkPalette is the dark-mode color set.
var DarkPalette = Palette{
	Primary:     lipgloss.Color("#60A5FA"),
	PrimaryDeep: lipgloss.Color("#1D4ED8"),

	Success: lipgloss.Color("#34D399"),
	Warning: lipgloss.Color("#FBBF24"),
	Danger:  lipgloss.Color("#FB7185"),

	Surface:       lipgloss.Color("#1E1E2E"),
	SurfaceDim:    lipgloss.Color("#181825"),
	SurfaceBright: lipgloss.Color("#313244"),

	Text:          lipgloss.Color("#E4E4E7"),
	TextSecondary: lipgloss.Color("#A1A1AA"),
	TextMuted:     lipgloss.Color("#71717A"),

	UserBubbleBg:      lipgloss.Color("#1E3A8A"),
	UserBubbleFg:      lipgloss.Color("#DBEAFE"),
	AssistantBubbleBg: lipgloss.Color("#27272A"),
	AssistantBubbleFg: lipgloss.Color("#E4E4E7"),
	BubbleBorder:      lipgloss.Color("#3F3F46"),
}

// Degrade maps every palette color to the nearest one the terminal's
// color profile can display. TrueColor terminals keep the hex values.
func (p Palette) Degrade(profile termenv.Profile) Palette {
	if profile == termenv.TrueColor {
		return p
	}
	for _, c := range []*lipgloss.Color{
		&p.Primary, &p.PrimaryDeep,
		&p.Success, &p.Warning, &p.Danger,
		&p.Surface, &p.SurfaceDim, &p.SurfaceBright,
		&p.Text, &p.TextSecondary, &p.TextMuted,
		&p.UserBubbleBg, &p.UserBubbleFg,
		&p.AssistantBubbleBg, &p.AssistantBubbleFg,
		&p.BubbleBorder,
	} {
		*c = degradeColor(profile, *c)
	}
	return p
}

// degradeColor converts one hex color to the profile's gamut. Indexed
// colors come back as their numeric form, which lipgloss accepts.
func degradeColor(profile termenv.Profile, c lipgloss.Color) lipgloss.Color {
	switch v := profile.Convert(termenv.RGBColor(string(c))).(type) {
	case termenv.ANSIColor:
		return lipgloss.Color(strconv.Itoa(int(v)))
	case termenv.ANSI256Color:
		return lipgloss.Color(strconv.Itoa(int(v)))
	case termenv.RGBColor:
		return lipgloss.Color(string(v))
	default:
		// Ascii profile: no color at all.
		return lipgloss.Color("")
	}
}
