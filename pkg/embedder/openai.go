package embedder

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docask/docask/pkg/index"
)

// maxBatchInputs caps how many texts go into a single embeddings request.
// Larger document builds are split into sequential sub-batches.
const maxBatchInputs = 128

// OpenAIEmbedder embeds text through the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	dim    int
}

// NewOpenAIEmbedder creates an OpenAI embedder. The API key comes from the
// OPENAI_API_KEY environment variable.
func NewOpenAIEmbedder(model string) (*OpenAIEmbedder, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable not set", ErrEmbed)
	}

	dim := 1536 // text-embedding-3-small
	if model == "text-embedding-3-large" {
		dim = 3072
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(key),
		model:  model,
		dim:    dim,
	}, nil
}

// Embed generates a unit-normalized embedding for a single text.
func (e *OpenAIEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for texts, one vector per input in input
// order, issuing sub-batched API requests.
func (e *OpenAIEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatchInputs {
		end := start + maxBatchInputs
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := e.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(e.model),
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("%w: openai request: %v", ErrEmbed, err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbed, end-start, len(resp.Data))
		}

		for _, item := range resp.Data {
			embeddings = append(embeddings, index.Normalize(item.Embedding))
		}
	}
	return embeddings, nil
}

// Dimension returns the embedding dimension for the configured model.
func (e *OpenAIEmbedder) Dimension() int { return e.dim }

// ModelInfo identifies the provider and model, recorded in snapshots so a
// model change invalidates them.
func (e *OpenAIEmbedder) ModelInfo() string { return "openai-" + e.model }
