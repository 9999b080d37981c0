// Package gemini wraps the Gemini API for the single-shot structured-output
// calls the discovery pipeline makes (category detection, relevance ranking,
// placeholder generation). Every call is bounded by a timeout; callers treat
// any error as a signal to use their local fallback.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Generator is the capability surface the pipeline stages depend on.
// Tests substitute a stub; production uses *Client.
type Generator interface {
	// GenerateText returns the model's plain-text response to the prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a JSON response conforming to schema and
	// unmarshals it into out.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

// Config for the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the Gemini API with a fixed model and per-call timeout.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// GenerateText returns the model's plain-text response to the prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

// GenerateJSON asks for a schema-constrained JSON response and unmarshals it
// into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fmt.Errorf("gemini returned an empty response")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return nil
}

var _ Generator = (*Client)(nil)
