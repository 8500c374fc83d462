package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoVectors is returned when an index build is attempted with no input.
var ErrNoVectors = errors.New("index: no vectors to build")

// ErrSearch wraps internal search failures such as a query whose dimension
// does not match the stored vectors.
var ErrSearch = errors.New("index: search failed")

// Chunk is a contiguous word-window slice of the document, the unit of
// retrieval. IDs are dense, zero-based, and assigned in document order.
type Chunk struct {
	ID   int
	Text string
}

// SearchResult is a single scored hit. Score is the inner product of the
// unit-normalized query and stored vector, i.e. cosine similarity.
type SearchResult struct {
	ID    int
	Score float32
}

// Index holds unit-normalized embedding vectors for exact inner-product
// search. It is built once and safe for concurrent reads afterwards.
type Index struct {
	vectors [][]float32
	dim     int
}

// Normalize returns v scaled to unit L2 length. A zero vector is returned
// as a copy, unchanged.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		copy(out, v)
		return out
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i, x := range v {
		out[i] = x * inv
	}
	return out
}

// Build creates an index from raw embedding vectors. Each row is normalized
// once here, so Search can score by plain dot product. It fails with
// ErrNoVectors when the input is empty and on inconsistent row dimensions.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("index: zero-dimension vectors")
	}
	stored := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("index: vector %d has dimension %d, want %d", i, len(v), dim)
		}
		stored[i] = Normalize(v)
	}
	return &Index{vectors: stored, dim: dim}, nil
}

// Load creates an index from vectors that are already unit-normalized,
// typically restored from a snapshot. No renormalization happens, so a
// loaded index reproduces the original index's scores exactly.
func Load(vectors [][]float32, dim int) *Index {
	return &Index{vectors: vectors, dim: dim}
}

// Len returns the number of stored vectors.
func (ix *Index) Len() int { return len(ix.vectors) }

// Dimension returns the vector dimension, 0 for an empty index.
func (ix *Index) Dimension() int { return ix.dim }

// Vectors exposes the stored (normalized) vectors for snapshotting. Callers
// must not mutate the returned slices.
func (ix *Index) Vectors() [][]float32 { return ix.vectors }

// Search returns the top-k stored vectors by cosine similarity to query,
// descending by score with ties broken by ascending id. An empty index
// yields an empty result without error. k is clamped to the index size;
// k <= 0 yields an empty result. Any candidate id outside [0, n) is
// filtered out before returning.
func (ix *Index) Search(query []float32, k int) ([]SearchResult, error) {
	n := len(ix.vectors)
	if n == 0 {
		return nil, nil
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", ErrSearch, len(query), ix.dim)
	}
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	q := Normalize(query)
	scored := make([]SearchResult, n)
	for i, v := range ix.vectors {
		scored[i] = SearchResult{ID: i, Score: dot(q, v)}
	}
	sort.Slice(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].ID < scored[b].ID
	})

	// Fill exactly k candidate slots, leaving the -1 sentinel in any slot
	// without a match, then drop the sentinels and anything out of range.
	ids := make([]int, k)
	scores := make([]float32, k)
	for i := range ids {
		ids[i] = -1
	}
	for i := 0; i < k && i < len(scored); i++ {
		ids[i] = scored[i].ID
		scores[i] = scored[i].Score
	}
	results := make([]SearchResult, 0, k)
	for i, id := range ids {
		if id < 0 || id >= n {
			continue
		}
		results = append(results, SearchResult{ID: id, Score: scores[i]})
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
