package openaicompat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/spark-api/internal/generation"
)

// chatCompletionBody is the subset of the request contract we assert on.
type chatCompletionBody struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestBackend(t *testing.T, serverURL, defaultKey string) *Backend {
	t.Helper()
	backend, err := NewBackend(slog.Default(), "test", "test-model", serverURL, defaultKey, 5*time.Second)
	require.NoError(t, err)
	return backend
}

func completionResponse(content string) string {
	return `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` +
		mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateTextSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("生成的文案")))
	}))
	defer server.Close()

	backend := newTestBackend(t, server.URL, "default-key")

	text, err := backend.GenerateText(context.Background(), generation.TextRequest{
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "生成的文案", text)
	assert.Equal(t, "Bearer default-key", gotAuth)
	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "system prompt", gotBody.Messages[0].Content)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "user prompt", gotBody.Messages[1].Content)
}

func TestGenerateTextKeyOverride(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("ok")))
	}))
	defer server.Close()

	backend := newTestBackend(t, server.URL, "default-key")

	_, err := backend.GenerateText(context.Background(), generation.TextRequest{
		UserPrompt: "prompt",
		APIKey:     "user-key",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer user-key", gotAuth, "per-call key must override the default")
}

func TestGenerateTextNon2xxCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exhausted"}}`))
	}))
	defer server.Close()

	backend := newTestBackend(t, server.URL, "default-key")

	_, err := backend.GenerateText(context.Background(), generation.TextRequest{UserPrompt: "prompt"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429", "error should carry the status")
	assert.Contains(t, err.Error(), "quota exhausted", "error should carry the response body")
}

func TestGenerateTextEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	backend := newTestBackend(t, server.URL, "default-key")

	text, err := backend.GenerateText(context.Background(), generation.TextRequest{UserPrompt: "prompt"})

	require.NoError(t, err, "a successful response with no payload is not an error")
	assert.Empty(t, text)
}

func TestGenerateTextMissingKey(t *testing.T) {
	backend := newTestBackend(t, "http://localhost:0", "")

	_, err := backend.GenerateText(context.Background(), generation.TextRequest{UserPrompt: "prompt"})

	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewBackendValidation(t *testing.T) {
	_, err := NewBackend(nil, "x", "m", "http://u", "", time.Second)
	require.Error(t, err)

	_, err = NewBackend(slog.Default(), "x", "", "http://u", "", time.Second)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewBackend(slog.Default(), "x", "m", "", "", time.Second)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)
}
