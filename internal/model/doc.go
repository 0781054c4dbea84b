// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// This package defines the core domain types used throughout the application
// for representing the ordered chat transcript and its messages.
//
// # Key Types
//
//   - Transcript: Append-only ordered message sequence for one session
//   - Message: Single message with role, content, sources, and confidence
//   - AnswerState: Tagged lifecycle state (pending, resolved, failed)
//   - Source: Cited document reference (file name + page)
//
// # Usage
//
// Append an exchange and settle it when the backend responds:
//
//	tr := model.NewTranscript()
//	placeholder := tr.AddExchange("What is circular X?")
//	// ... backend call settles ...
//	tr.ResolveLast(answer, sources, confidence)
//
// The only in-place mutation the transcript permits is settling the newest
// pending assistant placeholder; everything else is append-only.
package model
