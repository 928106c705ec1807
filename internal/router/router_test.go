package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/newsnexus/internal/apperr"
	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/storage/in_mem"
)

type fakeAI struct {
	failing bool
}

func (f *fakeAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	if f.failing {
		return "", fmt.Errorf("quota exceeded")
	}
	return "generated for: " + prompt, nil
}

func (f *fakeAI) Chat(ctx context.Context, history []domain.ChatMessage, message, articleContext string) (string, error) {
	if f.failing {
		return "", fmt.Errorf("quota exceeded")
	}
	return fmt.Sprintf("reply to %q with %d prior turns", message, len(history)), nil
}

func newTestServer(t *testing.T) (*echo.Echo, *in_mem.Store, *fakeAI) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	store := in_mem.NewStore()
	ai := &fakeAI{}

	NewFeedRouter(e, store).Bind()
	NewAIRouter(e, ai).Bind()
	NewGroupRouter(e, store).Bind()

	return e, store, ai
}

func seedArticles(t *testing.T, store *in_mem.Store) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Upsert(t.Context(), []domain.Article{
		{
			ID: "news_1", Title: "GPU supply update", Summary: "Chips everywhere",
			Content: "body", SourceURL: "https://example.com/1", ImageURL: "https://example.com/1.png",
			PublishedAt: now, Sector: domain.SectorEngineering, ImpactLevel: domain.ImpactMedium,
			SourceName: "Example", Author: "Jane",
		},
		{
			ID: "news_2", Title: "Hospital pilot", Summary: "Radiology trial",
			Content: "body", SourceURL: "https://example.com/2", ImageURL: "https://example.com/2.png",
			PublishedAt: now.Add(-time.Hour), Sector: domain.SectorHealth, ImpactLevel: domain.ImpactLow,
			SourceName: "Example", Author: "Jane",
		},
	}))
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFeedHandler(t *testing.T) {
	e, store, _ := newTestServer(t)
	seedArticles(t, store)

	rec := doJSON(e, http.MethodGet, "/api/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 2)
	assert.Equal(t, "news_1", articles[0].ID, "ordered by published_at desc")
}

func TestFeedHandler_SectorFilter(t *testing.T) {
	e, store, _ := newTestServer(t)
	seedArticles(t, store)

	rec := doJSON(e, http.MethodGet, "/api/feed?sector=Health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, domain.SectorHealth, articles[0].Sector)
}

func TestFeedHandler_InvalidSector(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/feed?sector=Sports", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid sector")
}

func TestSearchHandler(t *testing.T) {
	e, store, _ := newTestServer(t)
	seedArticles(t, store)

	rec := doJSON(e, http.MethodGet, "/api/search?q=radiology", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "news_2", articles[0].ID)
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeHandler(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/summarize", `{"text":"long article body"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["summary"], "long article body")
}

func TestSummarizeHandler_MissingText(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/summarize", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeHandler_UpstreamFailure(t *testing.T) {
	e, _, ai := newTestServer(t)
	ai.failing = true

	rec := doJSON(e, http.MethodPost, "/api/summarize", `{"text":"body"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAIRoutes_NotConfigured(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewAIRouter(e, nil).Bind()

	rec := doJSON(e, http.MethodPost, "/api/summarize", `{"text":"body"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatHandler(t *testing.T) {
	e, _, _ := newTestServer(t)

	body := `{"history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}],"message":"what is new?","context":"article text"}`
	rec := doJSON(e, http.MethodPost, "/api/chat", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "2 prior turns")
}

func TestChatHandler_MissingMessage(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/chat", `{"history":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroupLifecycle(t *testing.T) {
	e, store, _ := newTestServer(t)
	seedArticles(t, store)

	rec := doJSON(e, http.MethodPost, "/api/groups/create", `{"name":"AI watchers","description":"news sharing","type":"public"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var group domain.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))
	assert.Equal(t, "AI watchers", group.Name)

	rec = doJSON(e, http.MethodGet, "/api/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []domain.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)

	body := fmt.Sprintf(`{"group_id":%q,"user_id":"user-1","content":"hello all"}`, group.ID.String())
	rec = doJSON(e, http.MethodPost, "/api/groups/messages", body)
	require.Equal(t, http.StatusOK, rec.Code)

	body = fmt.Sprintf(`{"group_id":%q,"news_id":"news_1","user_id":"user-1"}`, group.ID.String())
	rec = doJSON(e, http.MethodPost, "/api/groups/share", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/groups/"+group.ID.String()+"/messages?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []domain.GroupMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "Shared an article", messages[1].Content)
	require.NotNil(t, messages[1].Article)
	assert.Equal(t, "GPU supply update", messages[1].Article.Title)
}

func TestGroupMessages_InvalidID(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/groups/not-a-uuid/messages", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGroup_MissingName(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/groups/create", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
