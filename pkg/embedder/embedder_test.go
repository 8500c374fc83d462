package embedder

import (
	"math"
	"testing"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(64)

	text := "the cat sat on the mat"
	v1, err := e.Embed(text)
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	v2, err := e.Embed(text)
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	if len(v1) != 64 {
		t.Fatalf("expected dimension 64, got %d", len(v1))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("embedding not deterministic at index %d: %v vs %v", i, v1[i], v2[i])
		}
	}
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	e := NewHashEmbedder(128)

	v, err := e.Embed("some words to embed here")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
		t.Fatalf("expected unit norm, got %f", math.Sqrt(sum))
	}
}

func TestHashEmbedder_DifferentTextsDiffer(t *testing.T) {
	e := NewHashEmbedder(128)

	v1, _ := e.Embed("cats and dogs")
	v2, _ := e.Embed("stars and planets")

	different := false
	for i := range v1 {
		if v1[i] != v2[i] {
			different = true
			break
		}
	}
	if !different {
		t.Fatalf("expected different embeddings for different texts")
	}
}

func TestHashEmbedder_BatchMatchesSingle(t *testing.T) {
	e := NewHashEmbedder(32)

	texts := []string{"first chunk", "second chunk", "third chunk"}
	batch, err := e.EmbedBatch(texts)
	if err != nil {
		t.Fatalf("batch embed failed: %v", err)
	}
	if len(batch) != len(texts) {
		t.Fatalf("expected %d embeddings, got %d", len(texts), len(batch))
	}

	for i, text := range texts {
		single, err := e.Embed(text)
		if err != nil {
			t.Fatalf("embed failed: %v", err)
		}
		for j := range single {
			if batch[i][j] != single[j] {
				t.Fatalf("batch result %d differs from single embed at index %d", i, j)
			}
		}
	}
}

func TestHashEmbedder_EmptyText(t *testing.T) {
	e := NewHashEmbedder(16)

	v, err := e.Embed("")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(v) != 16 {
		t.Fatalf("expected dimension 16, got %d", len(v))
	}
}
