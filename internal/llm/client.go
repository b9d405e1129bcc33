package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls an OpenAI-compatible chat-completions endpoint. The rest of
// the system treats it as an opaque text-completion service: prompt in,
// text out.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	keyring    *Keyring
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    any    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *apiError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("api error: code=%v message=%s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error: message=%s", e.Message)
}

// NewClient builds a completion client. timeout covers the whole HTTP
// round trip.
func NewClient(baseURL, model string, keys []string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
		keyring:    NewKeyring(keys),
	}
}

// Generate sends a system instruction plus user prompt and returns the
// model's text. Each call uses the next key in rotation.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	key := c.keyring.Next()
	if key == "" {
		return "", errors.New("no LLM API key configured")
	}

	messages := make([]Message, 0, 2)
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	payload, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", parsed.Error
		}
		return "", fmt.Errorf("completion request returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
