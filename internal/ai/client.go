package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/account360/account360-api/internal/contact"
)

// Client calls an OpenAI-compatible chat completions endpoint. It is a thin
// HTTP client: the upstream URL, key, and model all come from configuration.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
}

func NewClient(apiURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask answers a natural-language question about the contact directory. The
// directory is flattened into the prompt, so answers only reflect what was
// passed in.
func (c *Client) Ask(ctx context.Context, question string, contacts []*contact.Contact) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(question, contacts)},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

func buildPrompt(question string, contacts []*contact.Contact) string {
	var sb strings.Builder
	sb.WriteString("You are a contact data assistant. Based on this data:\n")
	for _, c := range contacts {
		sb.WriteString(fmt.Sprintf("%s - %s - %s\n", c.Name, c.Email, c.Profession))
	}
	sb.WriteString("\nAnswer this question: ")
	sb.WriteString(question)
	return sb.String()
}
