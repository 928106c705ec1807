package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchAINews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		assert.Contains(t, r.URL.Query().Get("q"), " OR ")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{
				"source": {"id": "", "name": "Example"},
				"author": "Jane Doe",
				"title": "OpenAI ships a model",
				"description": "A description",
				"url": "https://example.com/a",
				"urlToImage": "https://example.com/a.png",
				"publishedAt": "2024-01-02T03:04:05Z",
				"content": "Full content"
			}]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	articles, err := client.FetchAINews(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "OpenAI ships a model", articles[0].Title)
	assert.Equal(t, "Example", articles[0].Source.Name)
}

func TestClient_FetchAINews_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "error", "code": "rateLimited", "message": "too many requests"}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.FetchAINews(t.Context(), nil)
	assert.ErrorContains(t, err, "rateLimited")
}

func TestClient_FetchAINews_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "bad-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.FetchAINews(t.Context(), nil)
	assert.Error(t, err)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestLoadTopicQuery(t *testing.T) {
	query, err := loadTopicQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "artificial intelligence OR machine learning")
}
