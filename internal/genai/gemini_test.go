package genai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/newsnexus/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestGeminiClient_GenerateText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "summarize this", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"a summary"}]}}]}`))
	})

	text, err := client.GenerateText(t.Context(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "a summary", text)
}

func TestGeminiClient_Chat_MapsRolesAndContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		require.Len(t, req.Contents, 3)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "model", req.Contents[1].Role)
		assert.Contains(t, req.Contents[2].Parts[0].Text, "Context: some article")
		assert.Contains(t, req.Contents[2].Parts[0].Text, "what changed?")
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, chatMaxOutputTokens, req.GenerationConfig.MaxOutputTokens)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"an answer"}]}}]}`))
	})

	history := []domain.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}

	answer, err := client.Chat(t.Context(), history, "what changed?", "some article")
	require.NoError(t, err)
	assert.Equal(t, "an answer", answer)
}

func TestGeminiClient_GenerateText_ServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	})

	_, err := client.GenerateText(t.Context(), "prompt")
	assert.Error(t, err)
}

func TestGeminiClient_GenerateText_EmptyPrompt(t *testing.T) {
	client, err := NewGeminiClient(GeminiConfig{APIKey: "k"})
	require.NoError(t, err)

	_, err = client.GenerateText(t.Context(), "  ")
	assert.Error(t, err)
}
