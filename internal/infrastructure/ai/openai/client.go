// Package openai provides the OpenAI-compatible chat client used for
// meal photo analysis and menu generation.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mealwise/v1/internal/infrastructure/config"
	"github.com/mealwise/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the ModelClient interface against an
// OpenAI-compatible chat completions endpoint. The credential is injected
// through configuration; an empty key puts the client into unavailable
// mode and callers use their fallback paths.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new model client from configuration.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	namedLogger := logger.Named("openai-client")

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	if cfg.APIKey == "" {
		namedLogger.Info("No API key configured, model calls disabled; fallback content will be served")
	} else {
		namedLogger.Info("Model client initialized",
			zap.String("base_url", baseURL),
			zap.String("model", cfg.Model),
		)
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
		logger:      namedLogger,
	}
}

// Chat completions API structures
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Complete sends a single chat completion request and returns the raw
// response text. An embedded image switches to the vision model and
// attaches the photo as a data URL content part.
func (c *Client) Complete(ctx context.Context, call outbound.ModelCall) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("model client not configured")
	}

	model := c.model
	userContent := interface{}(call.UserPrompt)
	if len(call.ImageData) > 0 {
		model = c.visionModel
		mime := call.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(call.ImageData))
		userContent = []contentPart{
			{Type: "text", Text: call.UserPrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}
	}

	maxTokens := call.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	temperature := call.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}

	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: call.SystemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}

	c.logger.Info("Model call successful",
		zap.String("model", model),
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
		zap.String("finish_reason", chatResp.Choices[0].FinishReason),
	)

	return content, nil
}
