// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLogin(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "emp42", req["user_id"])
		assert.Equal(t, "secret", req["password"])

		w.Write([]byte(`{
			"access_token": "tok123",
			"token_type": "bearer",
			"user": {"user_id": "emp42", "department": "Finance"}
		}`))
	})

	result, err := client.Login(context.Background(), "emp42", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok123", result.AccessToken)
	assert.Equal(t, "emp42", result.UserID)
	assert.Equal(t, "Finance", result.Department)
}

func TestLogin_BadCredentials(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect user ID or password"}`))
	})

	_, err := client.Login(context.Background(), "emp42", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect user ID or password", apiErr.Detail)
	assert.Equal(t, "Incorrect user ID or password", ErrorDetail(err))
}

func TestLogin_MissingToken(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"bearer"}`))
	})

	_, err := client.Login(context.Background(), "emp42", "secret")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Detail, "no token")
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestAsk(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("include_confidence"))
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is circular X?", req["question"])

		w.Write([]byte(`{
			"question": "What is circular X?",
			"answer": "Circular X covers travel claims.",
			"sources": [{"file_name": "circular-x.pdf", "page": 3}, {"file_name": "annex.pdf", "page": 1}],
			"confidence": 0.87
		}`))
	})

	answer, err := client.Ask(context.Background(), "tok123", "What is circular X?")

	require.NoError(t, err)
	assert.Equal(t, "Circular X covers travel claims.", answer.Text)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "circular-x.pdf", answer.Sources[0].FileName)
	assert.Equal(t, 3, answer.Sources[0].Page)
	require.NotNil(t, answer.Confidence)
	assert.Equal(t, 0.87, *answer.Confidence)
}

func TestAsk_Guards(t *testing.T) {
	client := New("http://unused")

	_, err := client.Ask(context.Background(), "", "question")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = client.Ask(context.Background(), "tok", "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAsk_LenientDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"fields absent", `{"answer":"A"}`},
		{"sources not a list", `{"answer":"A","sources":"oops"}`},
		{"sources null", `{"answer":"A","sources":null}`},
		{"confidence a string", `{"answer":"A","confidence":"high"}`},
		{"confidence null", `{"answer":"A","confidence":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			answer, err := client.Ask(context.Background(), "tok", "Q")

			require.NoError(t, err, "a malformed optional field must not fail the exchange")
			assert.Equal(t, "A", answer.Text)
			assert.Empty(t, answer.Sources)
			assert.Nil(t, answer.Confidence)
		})
	}
}

func TestAsk_EmptyAnswerPassedThrough(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	answer, err := client.Ask(context.Background(), "tok", "Q")

	require.NoError(t, err)
	assert.Empty(t, answer.Text, "the display fallback belongs to the caller")
}

func TestAsk_BackendError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"retriever unavailable"}`))
	})

	_, err := client.Ask(context.Background(), "tok", "Q")

	assert.Equal(t, "retriever unavailable", ErrorDetail(err))
}

func TestAsk_ErrorWithoutDetail(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	})

	_, err := client.Ask(context.Background(), "tok", "Q")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Detail)
}

func TestAsk_ContextCancelled(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Ask(ctx, "tok", "Q")

	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// FILE URL TESTS
// =============================================================================

func TestFileURL(t *testing.T) {
	client := New("http://localhost:8000/")

	tests := []struct {
		fileName string
		want     string
	}{
		{"circular-x.pdf", "http://localhost:8000/api/files/circular-x.pdf"},
		{"annual report 2024.pdf", "http://localhost:8000/api/files/annual%20report%202024.pdf"},
		{"notes#1.pdf", "http://localhost:8000/api/files/notes%231.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, client.FileURL(tt.fileName))
	}
}
