package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docask/docask/pkg/index"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Chunks: []index.Chunk{
			{ID: 0, Text: "the cat sat on the mat"},
			{ID: 1, Text: "the dog ran in the park"},
		},
		Vectors: [][]float32{
			{1, 0, 0},
			{0, 1, 0},
		},
		Dimension:   3,
		ModelInfo:   "hash-3",
		Fingerprint: "abc123",
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.index")

	want := testSnapshot()
	if err := Save(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Dimension != want.Dimension {
		t.Fatalf("dimension: got %d, want %d", got.Dimension, want.Dimension)
	}
	if got.ModelInfo != want.ModelInfo {
		t.Fatalf("model info: got %q, want %q", got.ModelInfo, want.ModelInfo)
	}
	if got.Fingerprint != want.Fingerprint {
		t.Fatalf("fingerprint: got %q, want %q", got.Fingerprint, want.Fingerprint)
	}
	if len(got.Chunks) != len(want.Chunks) {
		t.Fatalf("chunks: got %d, want %d", len(got.Chunks), len(want.Chunks))
	}
	for i := range want.Chunks {
		if got.Chunks[i] != want.Chunks[i] {
			t.Fatalf("chunk %d: got %+v, want %+v", i, got.Chunks[i], want.Chunks[i])
		}
		for j := range want.Vectors[i] {
			if got.Vectors[i][j] != want.Vectors[i][j] {
				t.Fatalf("vector %d differs at %d: got %f, want %f", i, j, got.Vectors[i][j], want.Vectors[i][j])
			}
		}
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.index")

	first := testSnapshot()
	if err := Save(path, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := &Snapshot{
		Chunks:      []index.Chunk{{ID: 0, Text: "only one chunk now"}},
		Vectors:     [][]float32{{0, 0, 1}},
		Dimension:   3,
		ModelInfo:   "hash-3",
		Fingerprint: "def456",
	}
	if err := Save(path, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Chunks) != 1 {
		t.Fatalf("expected 1 chunk after overwrite, got %d", len(got.Chunks))
	}
	if got.Fingerprint != "def456" {
		t.Fatalf("expected new fingerprint, got %q", got.Fingerprint)
	}
}

func TestSave_CountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.index")

	snap := testSnapshot()
	snap.Vectors = snap.Vectors[:1]
	if err := Save(path, snap); err == nil {
		t.Fatalf("expected error for chunk/vector count mismatch")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.index")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.index")
	if err := os.WriteFile(path, []byte("not a bolt database"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for corrupt snapshot")
	}
}
