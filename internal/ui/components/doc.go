// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the IntelliChat TUI.

This package contains styled components built on top of the Bubble Tea and
Lip Gloss libraries, sharing one design language through styles.Theme.

# Components

Header (header.go) - Application title bar with the signed-in identity.
StatusBar (statusbar.go) - Bottom shortcut strip, width-aware.
ErrorBanner (banner.go) - Dismissible top-level error line.
HelpOverlay (help.go) - Modal key-binding panel with the support contact.

All components take a *styles.Theme at construction and expose SetTheme so
the dark-mode toggle can restyle them in place.
*/
package components
