package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/projectflow/pkg/config"
)

// ErrEmptyCompletion is returned when the provider answers without choices
var ErrEmptyCompletion = errors.New("empty completion")

// StatusError is returned when the chat provider answers with a non-2xx status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// ChatClient is a minimal client for OpenAI-compatible chat completion APIs
type ChatClient struct {
	name    string
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// ChatOptions configures a ChatClient
type ChatOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewChatClient creates a chat client for the named provider
func NewChatClient(name string, opts ChatOptions) *ChatClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatClient{
		name:    name,
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewGroqClient creates the Groq chat client
func NewGroqClient(cfg *config.GroqConfig) *ChatClient {
	return NewChatClient("groq", ChatOptions{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
}

// NewOpenAIClient creates the OpenAI chat client
func NewOpenAIClient(cfg *config.OpenAIConfig) *ChatClient {
	return NewChatClient("openai", ChatOptions{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
}

// Name returns the provider name
func (c *ChatClient) Name() string {
	return c.name
}

// Configured reports whether an API key is present
func (c *ChatClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// ChatMessage is one entry of the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system and user prompt and returns the assistant content
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Provider: c.name, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode %s response: %w", c.name, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.name, ErrEmptyCompletion)
	}
	return cr.Choices[0].Message.Content, nil
}
