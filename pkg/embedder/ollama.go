package embedder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docask/docask/pkg/index"
)

// OllamaEmbedder embeds text through a local Ollama server.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
	dim     int
}

// NewOllamaEmbedder creates an Ollama embedder and probes the model once to
// learn its embedding dimension.
func NewOllamaEmbedder(baseURL, model string) (*OllamaEmbedder, error) {
	e := &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	probe, err := e.Embed("dimension probe")
	if err != nil {
		return nil, err
	}
	e.dim = len(probe)
	return e, nil
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed generates a unit-normalized embedding for a single text.
func (e *OllamaEmbedder) Embed(text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrEmbed, err)
	}

	resp, err := e.client.Post(e.baseURL+"/api/embeddings", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: ollama request: %v", ErrEmbed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama status %d: %s", ErrEmbed, resp.StatusCode, msg)
	}

	var embedResp ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrEmbed, err)
	}
	if len(embedResp.Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding from ollama", ErrEmbed)
	}
	return index.Normalize(embedResp.Embedding), nil
}

// EmbedBatch embeds texts sequentially; the Ollama embeddings endpoint takes
// one prompt per request.
func (e *OllamaEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

// Dimension returns the embedding dimension learned at construction.
func (e *OllamaEmbedder) Dimension() int { return e.dim }

// ModelInfo identifies the provider and model.
func (e *OllamaEmbedder) ModelInfo() string { return "ollama-" + e.model }
