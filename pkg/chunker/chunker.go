package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docask/docask/pkg/index"
)

// ErrInvalidConfig is returned for chunking parameters that cannot produce
// a terminating window sequence.
var ErrInvalidConfig = errors.New("chunker: invalid configuration")

// Split breaks text into overlapping word windows of chunkSize words,
// advancing by chunkSize-overlap words each step. Words are whitespace
// tokens and every chunk rejoins its words with single spaces. Empty text
// yields an empty slice; callers decide whether that is fatal.
//
// overlap must satisfy 0 <= overlap < chunkSize so the window always
// advances.
func Split(text string, chunkSize, overlap int) ([]index.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d, must be positive", ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d, must be in [0, %d)", ErrInvalidConfig, overlap, chunkSize)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	var chunks []index.Chunk
	for offset := 0; offset < len(words); offset += step {
		end := offset + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, index.Chunk{
			ID:   len(chunks),
			Text: strings.Join(words[offset:end], " "),
		})
	}
	return chunks, nil
}
