// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apiclient implements the HTTP client for the IntelliChat backend.
//
// The backend owns all business logic: credential verification, document
// retrieval, and answer generation. This client only moves requests and
// responses over the wire and normalizes the response shapes the UI needs.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests. Answer
	// generation can be slow; the separate slow-response advisory fires
	// well before this.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is used for all backend requests. Connection pooling
// avoids a TCP handshake per exchange.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common backend errors.
var (
	// ErrNoToken indicates an authenticated call was attempted without a
	// bearer token.
	ErrNoToken = errors.New("no bearer token")

	// ErrEmptyQuestion indicates an empty question was submitted.
	ErrEmptyQuestion = errors.New("empty question")
)

// =============================================================================
// API ERROR
// =============================================================================

// APIError represents a non-success response from the backend. Detail carries
// the backend-provided human-readable message when present.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorDetail extracts the human-readable message from an error for display.
// Backend errors surface their detail string; transport errors surface their
// message. Nothing beyond that leaks to the UI.
func errorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

// ErrorDetail is the public accessor used by the UI layers.
func ErrorDetail(err error) string {
	return errorDetail(err)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// loginRequest is the auth endpoint request body.
type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// loginResponse is the auth endpoint success body.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Message     string `json:"message"`
	User        struct {
		UserID     string `json:"user_id"`
		Department string `json:"department"`
	} `json:"user"`
}

// chatRequest is the chat endpoint request body.
type chatRequest struct {
	Question string `json:"question"`
}

// chatResponse is the chat endpoint success body. Sources and confidence are
// decoded leniently: a missing or malformed field degrades to its zero form
// instead of failing the whole exchange.
type chatResponse struct {
	Question   string          `json:"question"`
	Answer     string          `json:"answer"`
	Sources    json.RawMessage `json:"sources"`
	Confidence json.RawMessage `json:"confidence"`
}

// apiErrorResponse represents an error response from the backend.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// LoginResult carries the issued token and the display identity.
type LoginResult struct {
	AccessToken string
	UserID      string
	Department  string
}

// Answer is the normalized chat result.
type Answer struct {
	// Text is the answer markdown. Empty when the backend omitted the
	// field; the caller applies its display fallback.
	Text string

	// Sources is the cited source list, empty when absent or malformed.
	Sources []model.Source

	// Confidence is the numeric score, nil when absent or non-numeric.
	Confidence *float64
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the IntelliChat backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given backend base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// WithTimeout sets the request timeout. The client stops sharing the pooled
// transport's timeout and gets its own.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := *c.httpClient
	clone.Timeout = timeout
	c.httpClient = &clone
	return c
}

// WithHTTPClient sets a custom HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// AUTH ENDPOINT
// =============================================================================

// Login exchanges credentials for a bearer token. Exactly one network call
// per invocation; concurrent invocations are not deduplicated (the login form
// disables its submit control while a call is in flight).
func (c *Client) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	body, err := c.post(ctx, c.baseURL+"/login", "", loginRequest{
		UserID:   userID,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, &APIError{Status: http.StatusOK, Detail: "login response carried no token"}
	}

	return &LoginResult{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.UserID,
		Department:  resp.User.Department,
	}, nil
}

// =============================================================================
// CHAT ENDPOINT
// =============================================================================

// Ask submits a question and returns the normalized answer. The confidence
// score is always requested; the backend omits it otherwise.
func (c *Client) Ask(ctx context.Context, token, question string) (*Answer, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	body, err := c.post(ctx, c.baseURL+"/api/chat?include_confidence=true", token, chatRequest{
		Question: question,
	})
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	return &Answer{
		Text:       resp.Answer,
		Sources:    decodeSources(resp.Sources),
		Confidence: decodeConfidence(resp.Confidence),
	}, nil
}

// decodeSources tolerates a missing, null, or malformed sources field.
func decodeSources(raw json.RawMessage) []model.Source {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var sources []model.Source
	if err := json.Unmarshal(raw, &sources); err != nil {
		return nil
	}
	return sources
}

// decodeConfidence tolerates a missing, null, or non-numeric confidence field.
// A JSON null unmarshals into a float64 as a no-op, so it has to be caught
// before decoding or it would read as a zero score.
func decodeConfidence(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil
	}
	return &score
}

// =============================================================================
// FILE ENDPOINT
// =============================================================================

// FileURL builds the deterministic URL for a cited source document. The file
// itself is never fetched here; the link is handed to the user.
func (c *Client) FileURL(fileName string) string {
	return c.baseURL + "/api/files/" + url.PathEscape(fileName)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// post performs one JSON POST and returns the response body on success.
// Non-2xx responses become *APIError with the backend's detail string.
func (c *Client) post(ctx context.Context, requestURL, token string, reqBody any) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseError(resp.StatusCode, body)
	}
	return body, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// parseError converts a non-success response into an *APIError.
func parseError(status int, body []byte) error {
	var errResp apiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &APIError{Status: status, Detail: errResp.Detail}
	}
	return &APIError{Status: status, Detail: http.StatusText(status)}
}
