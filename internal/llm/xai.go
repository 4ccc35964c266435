package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultXAIBaseURL = "https://api.x.ai/v1"

// shared HTTP client for xAI API calls
var xaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for xAI API calls (10 requests/second with burst capacity of 5)
var xaiRateLimiter = rate.NewLimiter(10, 5)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type searchSource struct {
	Type     string   `json:"type"`
	XHandles []string `json:"x_handles,omitempty"`
}

type searchParameters struct {
	Mode            string         `json:"mode"`
	Sources         []searchSource `json:"sources"`
	FromDate        string         `json:"from_date,omitempty"`
	ToDate          string         `json:"to_date,omitempty"`
	ReturnCitations bool           `json:"return_citations,omitempty"`
}

type xaiChatRequest struct {
	Model            string            `json:"model"`
	Messages         []chatMessage     `json:"messages"`
	SearchParameters *searchParameters `json:"search_parameters,omitempty"`
}

type xaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type XAIConfig struct {
	APIKey  string
	Model   string // e.g., "grok-4-1-fast"
	BaseURL string // override for tests
}

// XAIClient calls the xAI chat-completions API with optional live X search
type XAIClient struct {
	config     XAIConfig
	httpClient *http.Client
}

func NewXAIClient(config XAIConfig) *XAIClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultXAIBaseURL
	}

	return &XAIClient{
		config:     config,
		httpClient: xaiHTTPClient,
	}
}

func (c *XAIClient) Model() string {
	return c.config.Model
}

func (c *XAIClient) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	reqBody := xaiChatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	if req.Search != nil {
		source := searchSource{Type: "x"}
		if req.Search.Handle != "" {
			source.XHandles = []string{req.Search.Handle}
		}

		params := &searchParameters{
			Mode:            "on",
			Sources:         []searchSource{source},
			ReturnCitations: true,
		}

		if !req.Search.From.IsZero() {
			params.FromDate = req.Search.From.Format("2006-01-02")
		}

		if !req.Search.To.IsZero() {
			params.ToDate = req.Search.To.Format("2006-01-02")
		}

		reqBody.SearchParameters = params
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	// rate limiting
	if err := xaiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider:   "xAI",
			StatusCode: resp.StatusCode,
			Body:       string(rawBody),
		}
	}

	var chatResp xaiChatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyCompletion
	}

	return &TextResponse{
		Text: text,
		Raw:  rawBody,
	}, nil
}
