// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestNewTheme_PaletteSelection(t *testing.T) {
	light := NewThemeWithProfile(false, termenv.TrueColor)
	dark := NewThemeWithProfile(true, termenv.TrueColor)

	assert.False(t, light.IsDark)
	assert.True(t, dark.IsDark)
	assert.Equal(t, LightPalette, light.Palette())
	assert.Equal(t, DarkPalette, dark.Palette())
	assert.NotEqual(t, light.Palette().Surface, dark.Palette().Surface)
}

func TestNewTheme_StylesConfigured(t *testing.T) {
	theme := NewThemeWithProfile(true, termenv.TrueColor)

	// Spot-check that initStyles ran and key styles carry their colors.
	assert.Equal(t, DarkPalette.Danger, theme.LoginError.GetForeground())
	assert.Equal(t, DarkPalette.Primary, theme.HeaderTitle.GetForeground())
	assert.True(t, theme.HeaderTitle.GetBold())
}

func TestPalette_DegradesToProfile(t *testing.T) {
	// A 256-color terminal gets indexed colors, not hex values.
	indexed := LightPalette.Degrade(termenv.ANSI256)
	assert.NotContains(t, string(indexed.Primary), "#")
	assert.NotEmpty(t, indexed.Primary)
	assert.Regexp(t, `^\d+$`, string(indexed.Danger))

	// A 16-color terminal stays within the ANSI range.
	ansi := DarkPalette.Degrade(termenv.ANSI)
	assert.Regexp(t, `^\d+$`, string(ansi.Primary))

	// An uncolored terminal drops colors entirely.
	plain := LightPalette.Degrade(termenv.Ascii)
	assert.Empty(t, plain.Primary)
	assert.Empty(t, plain.Text)

	// A truecolor terminal keeps the full palette.
	assert.Equal(t, LightPalette, LightPalette.Degrade(termenv.TrueColor))
}
