package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaGenerator answers questions through a local Ollama server.
type OllamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaGenerator creates an Ollama generator.
func NewOllamaGenerator(baseURL, model string) *OllamaGenerator {
	return &OllamaGenerator{
		baseURL: baseURL,
		model:   model,
		// generation takes longer than embedding
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Answer sends the grounding prompt to /api/generate and returns the
// non-streamed reply.
func (g *OllamaGenerator) Answer(question, docContext string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  g.model,
		Prompt: buildPrompt(question, docContext),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGenerate, err)
	}

	resp, err := g.client.Post(g.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: ollama request: %v", ErrGenerate, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama status %d: %s", ErrGenerate, resp.StatusCode, msg)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerate, err)
	}
	if genResp.Response == "" {
		return "", fmt.Errorf("%w: empty response from ollama", ErrGenerate)
	}
	return strings.TrimSpace(genResp.Response), nil
}
