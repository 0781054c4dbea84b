// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the chat screen of the IntelliChat TUI.

The screen is a thin Bubble Tea layer: widgets, key routing, and rendering.
The exchange protocol, the transcript, and all settlement rules live in the
controller package it wraps; this package forwards the controller's messages
and re-renders.

# Layout

Top to bottom: header, optional error banner, transcript viewport, advisory
row, input box, status bar. The help overlay replaces the whole screen while
visible.

# Key Bindings

	enter    send the input box content
	ctrl+e   export the transcript to Markdown
	ctrl+t   toggle dark mode
	ctrl+h   help overlay
	ctrl+l   logout
	esc      dismiss the error banner
*/
package chat
