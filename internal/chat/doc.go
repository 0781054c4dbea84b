// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat exchange controller.
//
// The controller is the state core between the input box and the backend:
// it owns the transcript, enforces single-flight sends, applies the
// optimistic insert-then-settle protocol, and raises the slow-response
// advisory.
//
// # Exchange protocol
//
//  1. Send appends the user message and an empty pending assistant
//     placeholder before any network I/O.
//  2. Exactly one chat call is issued; a 60s one-shot advisory timer is
//     armed alongside it.
//  3. On settlement the placeholder is updated in place exactly once:
//     answer, sources, and confidence together on success; failure state,
//     error text, and the top-level banner on error.
//
// There is no retry: a failed exchange is terminal for its message pair.
//
// # Staleness
//
// Each exchange carries a generation number. HandleAnswer, HandleError, and
// HandleSlowResponse drop messages whose generation is not current, so a
// completion that lands after logout, reset, or a later exchange cannot
// mutate state it no longer owns.
package chat
