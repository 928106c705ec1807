package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nexusai/newsnexus/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 45 * time.Second

	chatMaxOutputTokens = 500
)

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GeminiOption func(*GeminiClient)

func WithHttpClient(httpClient *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		c.http = httpClient
	}
}

type GeminiClient struct {
	cfg  GeminiConfig
	http *http.Client
}

var _ TextGenerator = (*GeminiClient)(nil)
var _ Chatter = (*GeminiClient)(nil)

func NewGeminiClient(cfg GeminiConfig, opts ...GeminiOption) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	c := &GeminiClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText sends a single-turn prompt and returns the first candidate.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	return c.generate(ctx, req)
}

// Chat replays the conversation history and sends the new message. The wire
// role "assistant" maps to the provider role "model"; an optional article
// context is prefixed to the message.
func (c *GeminiClient) Chat(ctx context.Context, history []domain.ChatMessage, message, articleContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is empty")
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}

	full := message
	if articleContext != "" {
		full = "Context: " + articleContext + "\n\n" + message
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: full}},
	})

	req := generateRequest{
		Contents:         contents,
		GenerationConfig: &generationConfig{MaxOutputTokens: chatMaxOutputTokens},
	}

	return c.generate(ctx, req)
}

func (c *GeminiClient) generate(ctx context.Context, payload generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
