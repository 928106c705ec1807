// Package fetcher retrieves raw AI-related articles from the NewsAPI
// "everything" endpoint for a fixed keyword window.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nexusai/newsnexus/internal/domain"
)

const (
	defaultBaseURL  = "https://newsapi.org"
	defaultPageSize = 50
	defaultLanguage = "en"
	defaultTimeout  = 30 * time.Second
)

// ProviderArticle is the raw NewsAPI record before admission and
// classification.
type ProviderArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type everythingResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []ProviderArticle `json:"articles"`
	Code         string            `json:"code,omitempty"`
	Message      string            `json:"message,omitempty"`
}

type Config struct {
	APIKey   string
	BaseURL  string
	PageSize int
	Language string
}

type Option func(*Client)

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

type Client struct {
	cfg   Config
	query string
	http  *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("news api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}

	query, err := loadTopicQuery()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:   cfg,
		query: query,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchAINews queries the provider once, sorted by recency. The sector hint
// is not applied as a provider-side filter; sector narrowing happens at read
// time against the store.
func (c *Client) FetchAINews(ctx context.Context, sectorHint *domain.Sector) ([]ProviderArticle, error) {
	if sectorHint != nil {
		slog.Debug("sector hint ignored at fetch time", "sector", *sectorHint)
	}

	q := url.Values{}
	q.Set("q", c.query)
	q.Set("language", c.cfg.Language)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	reqURL := c.cfg.BaseURL + "/v2/everything?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news provider returned %s", resp.Status)
	}

	var parsed everythingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("news provider error %s: %s", parsed.Code, parsed.Message)
	}

	slog.Info("fetched provider articles", "count", len(parsed.Articles), "total", parsed.TotalResults)
	return parsed.Articles, nil
}
