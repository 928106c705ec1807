package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusai/newsnexus/internal/apperr"
	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/genai"
)

// summarizeInputLimit truncates pasted article bodies before prompting.
const summarizeInputLimit = 5000

type AIService interface {
	genai.TextGenerator
	genai.Chatter
}

type AIRouter struct {
	e  *echo.Echo
	ai AIService
}

func NewAIRouter(e *echo.Echo, ai AIService) *AIRouter {
	return &AIRouter{
		e:  e,
		ai: ai,
	}
}

func (r *AIRouter) Bind() {
	r.e.POST("/api/summarize", r.summarizeHandler)
	r.e.POST("/api/chat", r.chatHandler)
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (r *AIRouter) summarizeHandler(c echo.Context) error {
	if r.ai == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "ai features are not configured")
	}

	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Text == "" {
		return apperr.NewValidation("text is required")
	}

	text := req.Text
	if runes := []rune(text); len(runes) > summarizeInputLimit {
		text = string(runes[:summarizeInputLimit])
	}

	prompt := fmt.Sprintf(
		"Summarize the following news text in 2-3 concise sentences. Focus on the key facts. Text: %s",
		text,
	)

	summary, err := r.ai.GenerateText(c.Request().Context(), prompt)
	if err != nil {
		return apperr.NewUpstream("failed to generate summary", err)
	}

	return c.JSON(http.StatusOK, summarizeResponse{Summary: summary})
}

type chatRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message"`
	Context string               `json:"context"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (r *AIRouter) chatHandler(c echo.Context) error {
	if r.ai == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "ai features are not configured")
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Message == "" {
		return apperr.NewValidation("message is required")
	}

	answer, err := r.ai.Chat(c.Request().Context(), req.History, req.Message, req.Context)
	if err != nil {
		return apperr.NewUpstream("failed to chat with AI", err)
	}

	return c.JSON(http.StatusOK, chatResponse{Response: answer})
}
