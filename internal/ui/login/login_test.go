// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifsca-dit/intellichat-tui/internal/ui/styles"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 30, 0, 0, time.Local)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good morning"},
		{8, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{16, "Good afternoon"},
		{17, "Good evening"},
		{23, "Good evening"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, greeting(at(tt.hour)), "hour %d", tt.hour)
	}
}

func TestSubmit_RequiresBothFields(t *testing.T) {
	m := New(nil, styles.NewTheme(false), "IntelliChat")

	cmd := m.submit()

	require.Nil(t, cmd)
	assert.False(t, m.InFlight())
	assert.Equal(t, "Please enter user ID and password", m.errText)
}

func TestUpdate_FrozenWhileInFlight(t *testing.T) {
	m := New(nil, styles.NewTheme(false), "IntelliChat")
	m.userID.SetValue("emp42")
	m.inFlight = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Nil(t, cmd)
	assert.Equal(t, "emp42", m.userID.Value(), "keystrokes are dropped during a login call")
}

func TestResultMsg_FailureClearsPassword(t *testing.T) {
	m := New(nil, styles.NewTheme(false), "IntelliChat")
	m.password.SetValue("secret")
	m.inFlight = true

	m, _ = m.Update(ResultMsg{Err: assert.AnError})

	assert.False(t, m.InFlight())
	assert.NotEmpty(t, m.errText)
	assert.Empty(t, m.password.Value())
}

func TestReset_KeepsUserID(t *testing.T) {
	m := New(nil, styles.NewTheme(false), "IntelliChat")
	m.userID.SetValue("emp42")
	m.password.SetValue("secret")
	m.errText = "boom"

	m.Reset()

	assert.Equal(t, "emp42", m.userID.Value())
	assert.Empty(t, m.password.Value())
	assert.Empty(t, m.errText)
	assert.False(t, m.InFlight())
}
