// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ANSWER STATE
// =============================================================================

// AnswerState tracks the lifecycle of an assistant message. A placeholder is
// Pending from the moment it is appended until the backend call settles, then
// transitions exactly once to Resolved or Failed.
type AnswerState int

const (
	// AnswerPending means the backend call has not settled yet.
	AnswerPending AnswerState = iota
	// AnswerResolved means the backend returned an answer.
	AnswerResolved
	// AnswerFailed means the backend call errored; the exchange is terminal.
	AnswerFailed
)

// String returns the string representation of the state.
func (s AnswerState) String() string {
	switch s {
	case AnswerPending:
		return "pending"
	case AnswerResolved:
		return "resolved"
	case AnswerFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a cited document reference attached to an assistant answer.
type Source struct {
	FileName string `json:"file_name"`
	Page     int    `json:"page"`
}

// UniqueSources de-duplicates sources by file name, preserving first-seen
// order.
func UniqueSources(sources []Source) []Source {
	if len(sources) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(sources))
	unique := make([]Source, 0, len(sources))
	for _, src := range sources {
		if seen[src.FileName] {
			continue
		}
		seen[src.FileName] = true
		unique = append(unique, src)
	}
	return unique
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the transcript.
//
// A user message is immutable once created. An assistant message is created
// empty and pending, then mutated exactly once when its backend call settles
// (see Transcript.ResolveLast and Transcript.FailLast).
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content is markdown display text.
	Content string `json:"content"`

	// Answer payload (assistant messages only)
	Sources    []Source `json:"sources,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`

	// State is always AnswerResolved for user messages.
	State AnswerState `json:"state"`
}

// NewUserMessage creates an immutable user message.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		State:     AnswerResolved,
	}
}

// NewPendingAssistantMessage creates an empty assistant placeholder.
func NewPendingAssistantMessage() *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		State:     AnswerPending,
	}
}

// IsPending returns true while the paired backend call has not settled.
func (m *Message) IsPending() bool {
	return m.State == AnswerPending
}

// IsFailed returns true if the paired backend call errored.
func (m *Message) IsFailed() bool {
	return m.State == AnswerFailed
}

// UniqueSources returns the message sources de-duplicated by file name.
func (m *Message) UniqueSources() []Source {
	return UniqueSources(m.Sources)
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
