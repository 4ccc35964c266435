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

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// shared HTTP client for OpenRouter API calls
// image generation is slow, so the timeout is generous
var openrouterHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenRouter API calls (5 requests/second with burst capacity of 5)
var openrouterRateLimiter = rate.NewLimiter(5, 5)

type imageChatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type imageChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
		FinishReason       string `json:"finish_reason"`
		NativeFinishReason string `json:"native_finish_reason"`
	} `json:"choices"`
}

type OpenRouterConfig struct {
	APIKey    string
	Model     string // e.g., "google/gemini-2.5-flash-image"
	BaseURL   string // override for tests
	SiteURL   string // HTTP-Referer attribution header
	SiteTitle string // X-Title attribution header
}

// OpenRouterClient generates images through OpenRouter's chat-completions
// API using the image response modality
type OpenRouterClient struct {
	config     OpenRouterConfig
	httpClient *http.Client
}

func NewOpenRouterClient(config OpenRouterConfig) *OpenRouterClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenRouterBaseURL
	}

	return &OpenRouterClient{
		config:     config,
		httpClient: openrouterHTTPClient,
	}
}

func (c *OpenRouterClient) Model() string {
	return c.config.Model
}

// generates one image and returns its URL (may be a data URL with inline
// base64 image data, depending on the model)
func (c *OpenRouterClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := imageChatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Modalities: []string{"image", "text"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	if c.config.SiteURL != "" {
		httpReq.Header.Set("HTTP-Referer", c.config.SiteURL)
	}

	if c.config.SiteTitle != "" {
		httpReq.Header.Set("X-Title", c.config.SiteTitle)
	}

	// rate limiting
	if err := openrouterRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{
			Provider:   "OpenRouter",
			StatusCode: resp.StatusCode,
			Body:       string(rawBody),
		}
	}

	var chatResp imageChatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrMalformedResponse
	}

	choice := chatResp.Choices[0]

	if isSafetyFinishReason(choice.FinishReason) || isSafetyFinishReason(choice.NativeFinishReason) {
		return "", ErrSafetyRejected
	}

	if len(choice.Message.Images) == 0 || choice.Message.Images[0].ImageURL.URL == "" {
		return "", ErrMalformedResponse
	}

	return choice.Message.Images[0].ImageURL.URL, nil
}

// the safety rejection marker varies by provider: OpenRouter normalizes to
// "content_filter", Gemini-family models report SAFETY / IMAGE_SAFETY natively
func isSafetyFinishReason(reason string) bool {
	switch strings.ToUpper(reason) {
	case "CONTENT_FILTER", "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT":
		return true
	}

	return false
}
