package retriever

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/docask/docask/pkg/embedder"
	"github.com/docask/docask/pkg/index"
	"github.com/docask/docask/pkg/snapshot"
)

// ErrNoContent is returned when a document produced no chunks; there is
// nothing to embed or query.
var ErrNoContent = errors.New("retriever: document has no content")

// Options controls the build path.
type Options struct {
	// SnapshotPath is where the built index is persisted and looked up.
	// Empty disables snapshotting.
	SnapshotPath string
	// Rebuild skips any existing snapshot and re-embeds the document.
	Rebuild bool
}

// Retriever owns the chunk list and vector index for one loaded document
// and serves top-k context retrieval against them.
type Retriever struct {
	emb    embedder.Embedder
	index  *index.Index
	chunks []index.Chunk
}

// Build constructs a retriever for chunks, loading a prior snapshot when
// one exists and still matches the document and model, and embedding from
// scratch otherwise. A fresh build is persisted back to the snapshot path;
// a snapshot that cannot be written costs a rebuild next run but never
// fails the session.
func Build(emb embedder.Embedder, chunks []index.Chunk, opts Options) (*Retriever, error) {
	if len(chunks) == 0 {
		return nil, ErrNoContent
	}

	fp := fingerprint(chunks)

	if opts.SnapshotPath != "" && !opts.Rebuild {
		if snap, err := snapshot.Load(opts.SnapshotPath); err == nil {
			if snap.Fingerprint == fp && snap.ModelInfo == emb.ModelInfo() {
				log.Printf("Loaded snapshot %s (%d chunks, dim=%d)", opts.SnapshotPath, len(snap.Chunks), snap.Dimension)
				return &Retriever{
					emb:    emb,
					index:  index.Load(snap.Vectors, snap.Dimension),
					chunks: snap.Chunks,
				}, nil
			}
			log.Printf("Snapshot %s is stale, rebuilding", opts.SnapshotPath)
		}
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := emb.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("retriever: embedding document: %w", err)
	}

	ix, err := index.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("retriever: building index: %w", err)
	}

	if opts.SnapshotPath != "" {
		snap := &snapshot.Snapshot{
			Chunks:      chunks,
			Vectors:     ix.Vectors(),
			Dimension:   ix.Dimension(),
			ModelInfo:   emb.ModelInfo(),
			Fingerprint: fp,
		}
		if err := snapshot.Save(opts.SnapshotPath, snap); err != nil {
			log.Printf("Warning: failed to save snapshot %s: %v", opts.SnapshotPath, err)
		}
	}

	return &Retriever{emb: emb, index: ix, chunks: chunks}, nil
}

// Retrieve embeds the question, searches the index, and returns the top-k
// chunk texts joined with newlines in result order. An empty string with a
// nil error means no relevant context was found; it is not a failure.
func (r *Retriever) Retrieve(question string, k int) (string, error) {
	qvec, err := r.emb.Embed(question)
	if err != nil {
		return "", fmt.Errorf("retriever: embedding question: %w", err)
	}

	results, err := r.index.Search(qvec, k)
	if err != nil {
		return "", fmt.Errorf("retriever: %w", err)
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, r.chunks[res.ID].Text)
	}
	return strings.Join(texts, "\n"), nil
}

// Len returns the number of indexed chunks.
func (r *Retriever) Len() int { return len(r.chunks) }

// fingerprint hashes the chunk texts so a changed document invalidates its
// snapshot.
func fingerprint(chunks []index.Chunk) string {
	h := sha256.New()
	for _, c := range chunks {
		h.Write([]byte(c.Text))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
