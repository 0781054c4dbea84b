// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ifsca-dit/intellichat-tui/internal/apiclient"
	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// FallbackAnswer is shown when the backend omits the answer field.
const FallbackAnswer = "No response received."

// DefaultSlowResponseAfter is how long an exchange may run before the
// server-under-load advisory is shown.
const DefaultSlowResponseAfter = 60 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// AnswerMsg delivers a settled backend answer for an exchange.
type AnswerMsg struct {
	Generation uint64
	Answer     *apiclient.Answer
}

// AnswerErrMsg delivers an exchange failure.
type AnswerErrMsg struct {
	Generation uint64
	Err        error
}

// SlowResponseMsg fires when an exchange has run past the advisory
// threshold. Informational only; the request is not aborted.
type SlowResponseMsg struct {
	Generation uint64
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the transcript and orchestrates one exchange at a time.
//
// Send appends the user message and a pending assistant placeholder before
// any network I/O, then issues exactly one chat call. The single-flight guard
// means the placeholder a settling call updates is always the newest message.
//
// Every exchange runs under a generation number. Settlement messages from an
// older generation are dropped, so a response that arrives after logout or
// reset cannot touch the new transcript. Reset also cancels the in-flight
// request's context.
type Controller struct {
	transcript *model.Transcript

	api *apiclient.Client

	// tokenFn supplies the current bearer token; owned by the session
	// manager, injected so the controller never reads ambient storage.
	tokenFn func() string

	inFlight   bool
	generation uint64
	cancel     context.CancelFunc

	// banner is the top-level error line, empty when clear.
	banner string

	// slowVisible is true after the advisory timer fired for the current
	// exchange.
	slowVisible bool

	slowAfter time.Duration
}

// NewController creates a controller over the given API client.
func NewController(api *apiclient.Client, tokenFn func() string) *Controller {
	return &Controller{
		transcript: model.NewTranscript(),
		api:        api,
		tokenFn:    tokenFn,
		slowAfter:  DefaultSlowResponseAfter,
	}
}

// WithSlowResponseAfter overrides the advisory threshold.
func (c *Controller) WithSlowResponseAfter(d time.Duration) *Controller {
	c.slowAfter = d
	return c
}

// =============================================================================
// SEND
// =============================================================================

// Send starts an exchange for text. It is a no-op when the trimmed text is
// empty or another exchange is in flight; otherwise it mutates the transcript
// synchronously and returns the commands that issue the backend call and arm
// the advisory timer.
func (c *Controller) Send(text string) tea.Cmd {
	question := strings.TrimSpace(text)
	if question == "" || c.inFlight {
		return nil
	}

	c.transcript.AddExchange(question)
	c.banner = ""
	c.slowVisible = false
	c.inFlight = true
	c.generation++
	gen := c.generation

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	api := c.api
	token := c.tokenFn()

	ask := func() tea.Msg {
		answer, err := api.Ask(ctx, token, question)
		if err != nil {
			return AnswerErrMsg{Generation: gen, Err: err}
		}
		return AnswerMsg{Generation: gen, Answer: answer}
	}

	slow := tea.Tick(c.slowAfter, func(time.Time) tea.Msg {
		return SlowResponseMsg{Generation: gen}
	})

	return tea.Batch(ask, slow)
}

// =============================================================================
// SETTLEMENT
// =============================================================================

// HandleAnswer settles the pending placeholder with a successful answer.
// Stale generations are dropped.
func (c *Controller) HandleAnswer(msg AnswerMsg) {
	if msg.Generation != c.generation || !c.inFlight {
		return
	}

	content := msg.Answer.Text
	if content == "" {
		content = FallbackAnswer
	}
	c.transcript.ResolveLast(content, msg.Answer.Sources, msg.Answer.Confidence)
	c.settle()
}

// HandleError settles the pending placeholder with a failure. The same
// detail feeds both the inline failure text and the top-level banner.
func (c *Controller) HandleError(msg AnswerErrMsg) {
	if msg.Generation != c.generation || !c.inFlight {
		return
	}

	detail := apiclient.ErrorDetail(msg.Err)
	c.transcript.FailLast("Error: " + detail)
	c.banner = "Failed to get response: " + detail
	c.settle()
}

// HandleSlowResponse raises the advisory if its exchange is still running.
func (c *Controller) HandleSlowResponse(msg SlowResponseMsg) {
	if msg.Generation != c.generation || !c.inFlight {
		return
	}
	c.slowVisible = true
}

// settle clears the in-flight state shared by both settlement paths.
func (c *Controller) settle() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inFlight = false
	c.slowVisible = false
}

// =============================================================================
// TEARDOWN
// =============================================================================

// Reset discards the transcript and invalidates any in-flight exchange.
// Called on logout: the generation bump makes a late completion a stale
// no-op, and the context cancel stops the transport from waiting on it.
func (c *Controller) Reset() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.inFlight = false
	c.slowVisible = false
	c.banner = ""
	c.transcript = model.NewTranscript()
}

// =============================================================================
// STATE ACCESS
// =============================================================================

// Transcript returns the current transcript.
func (c *Controller) Transcript() *model.Transcript {
	return c.transcript
}

// InFlight reports whether an exchange is in progress.
func (c *Controller) InFlight() bool {
	return c.inFlight
}

// Banner returns the top-level error line, empty when clear.
func (c *Controller) Banner() string {
	return c.banner
}

// ClearBanner dismisses the top-level error line.
func (c *Controller) ClearBanner() {
	c.banner = ""
}

// SlowResponseVisible reports whether the load advisory should be shown.
func (c *Controller) SlowResponseVisible() bool {
	return c.slowVisible
}
