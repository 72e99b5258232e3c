package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// LLM answers a single system + user prompt.
type LLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient calls the chat completions endpoint.
type OpenAIClient struct {
	httpClient *resty.Client
	model      string
}

func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(120*time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &OpenAIClient{httpClient: client, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	var out chatResponse
	var apiErr openAIError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("OpenAI error: %s (status: %d)", apiErr.Error.Message, resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
