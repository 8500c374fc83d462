package embedder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docask/docask/pkg/index"
)

// ErrEmbed wraps failures of the underlying embedding model. The retrieval
// core never substitutes zero vectors for failed embeddings.
var ErrEmbed = errors.New("embedder: embedding failed")

// Embedder turns text into fixed-dimension float vectors. EmbedBatch must
// return one vector per input, in input order, identical to what Embed
// would return for each text individually.
type Embedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
	Dimension() int
	ModelInfo() string
}

// HashEmbedder is a deterministic local embedder based on hashed word
// frequencies. It needs no external model, which makes it useful offline
// and in tests, at the cost of retrieval quality.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder with the given dimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 128
	}
	return &HashEmbedder{dim: dimension}
}

func (e *HashEmbedder) Embed(text string) ([]float32, error) {
	words := strings.Fields(strings.ToLower(text))

	vec := make([]float32, e.dim)
	if len(words) == 0 {
		return vec, nil
	}

	counts := make(map[string]int)
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word != "" {
			counts[word]++
		}
	}
	for word, count := range counts {
		hash := 0
		for _, r := range word {
			hash = hash*31 + int(r)
		}
		pos := (hash & 0x7FFFFFFF) % e.dim
		vec[pos] += float32(count) / float32(len(words))
	}
	return index.Normalize(vec), nil
}

func (e *HashEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
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

func (e *HashEmbedder) Dimension() int { return e.dim }

func (e *HashEmbedder) ModelInfo() string {
	return fmt.Sprintf("hash-%d", e.dim)
}
