package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultEmbedModel is the recommended embedding model
	DefaultEmbedModel = "nomic-embed-text"
	// DefaultGenerateModel is the default model for commit message synthesis
	DefaultGenerateModel = "llama3.1:8b"
	// DefaultURL is the default Ollama API endpoint
	DefaultURL = "http://localhost:11434"
)

// Client wraps the Ollama API client for both embedding and generation
type Client struct {
	client        *api.Client
	embedModel    string
	generateModel string
}

// NewClient creates a new Ollama client
func NewClient(embedModel, generateModel string) (*Client, error) {
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	if generateModel == "" {
		generateModel = DefaultGenerateModel
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		client:        client,
		embedModel:    embedModel,
		generateModel: generateModel,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultURL
	}

	// Try to connect with a short timeout
	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Embed generates one embedding vector per input text, preserving order.
// Fails loudly: no partial or empty results are ever returned alongside a
// nil error.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := &api.EmbedRequest{
		Model: c.embedModel,
		Input: texts,
	}

	resp, err := c.client.Embed(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	// Convert from []float32 to []float64
	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding32 := range resp.Embeddings {
		vec := make([]float64, len(embedding32))
		for j, v := range embedding32 {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// Generate sends a prompt to the generation model and returns the full
// response text. No streaming: the pipeline consumes complete responses.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  c.generateModel,
		System: systemPrompt,
		Prompt: userPrompt,
		Stream: &stream,
	}

	var response string
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		response += resp.Response
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	return response, nil
}

// CheckModel checks if a model is available locally
func (c *Client) CheckModel(ctx context.Context, model string) error {
	listResp, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, m := range listResp.Models {
		if m.Name == model {
			return nil
		}
	}

	return fmt.Errorf("model '%s' not found - run: ollama pull %s", model, model)
}

// EmbedModel returns the embedding model being used
func (c *Client) EmbedModel() string {
	return c.embedModel
}

// GenerateModel returns the generation model being used
func (c *Client) GenerateModel() string {
	return c.generateModel
}
