// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered messages of the current session.
//
// It is append-only with one exception: the most recent assistant placeholder
// may be updated in place exactly once when its backend call settles. Order is
// causal send order. The transcript is scoped to one authenticated session and
// never persisted.
type Transcript struct {
	// Identity
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages
	Messages []*Message `json:"messages"`
}

// NewTranscript creates an empty transcript with a generated ID.
func NewTranscript() *Transcript {
	return &Transcript{
		ID:        "chat_" + generateID(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddExchange appends a user message and its paired pending assistant
// placeholder in one operation, and returns the placeholder. This is the only
// way messages enter the transcript, which guarantees the newest message is
// always the placeholder a settling call must update.
func (t *Transcript) AddExchange(question string) *Message {
	user := NewUserMessage(question)
	assistant := NewPendingAssistantMessage()
	t.Messages = append(t.Messages, user, assistant)
	t.UpdatedAt = time.Now()
	return assistant
}

// LastMessage returns the most recent message, or nil if empty.
func (t *Transcript) LastMessage() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// ResolveLast settles the newest pending assistant placeholder with the
// backend answer. All fields are set together so a rendered message is never
// observed half-updated. Returns false if there is no pending placeholder.
func (t *Transcript) ResolveLast(content string, sources []Source, confidence *float64) bool {
	last := t.LastMessage()
	if last == nil || last.Role != RoleAssistant || !last.IsPending() {
		return false
	}

	last.Content = content
	last.Sources = sources
	last.Confidence = confidence
	last.State = AnswerResolved
	t.UpdatedAt = time.Now()
	return true
}

// FailLast settles the newest pending assistant placeholder with an error.
// Sources and confidence are cleared; the exchange is terminal and the user
// must resend to try again.
func (t *Transcript) FailLast(errText string) bool {
	last := t.LastMessage()
	if last == nil || last.Role != RoleAssistant || !last.IsPending() {
		return false
	}

	last.Content = errText
	last.Sources = nil
	last.Confidence = nil
	last.State = AnswerFailed
	t.UpdatedAt = time.Now()
	return true
}

// MessageCount returns the number of messages.
func (t *Transcript) MessageCount() int {
	return len(t.Messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.Messages) == 0
}

// History returns the message history for display.
func (t *Transcript) History() []*Message {
	return t.Messages
}

// Preview returns a short preview of the transcript's first question.
func (t *Transcript) Preview() string {
	for _, msg := range t.Messages {
		if msg.Role == RoleUser {
			return msg.Preview(50)
		}
	}
	return "Empty chat"
}
