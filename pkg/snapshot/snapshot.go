package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.etcd.io/bbolt"

	"github.com/docask/docask/pkg/index"
)

var (
	bucketMeta    = []byte("meta")
	bucketChunks  = []byte("chunks")
	bucketVectors = []byte("vectors")

	keyMeta = []byte("snapshot")
)

// Snapshot is the persisted pair of a built vector index and its chunk
// list, plus enough metadata to decide whether it is still usable.
type Snapshot struct {
	Chunks      []index.Chunk
	Vectors     [][]float32
	Dimension   int
	ModelInfo   string
	Fingerprint string
}

type meta struct {
	Count       int    `json:"count"`
	Dimension   int    `json:"dimension"`
	ModelInfo   string `json:"model_info"`
	Fingerprint string `json:"fingerprint"`
}

// Save writes the snapshot to a bolt file at path, replacing any previous
// content in a single transaction.
func Save(path string, snap *Snapshot) error {
	if len(snap.Chunks) != len(snap.Vectors) {
		return fmt.Errorf("snapshot: %d chunks but %d vectors", len(snap.Chunks), len(snap.Vectors))
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketChunks, bucketVectors} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		m, err := json.Marshal(meta{
			Count:       len(snap.Chunks),
			Dimension:   snap.Dimension,
			ModelInfo:   snap.ModelInfo,
			Fingerprint: snap.Fingerprint,
		})
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketMeta).Put(keyMeta, m); err != nil {
			return err
		}

		chunks := tx.Bucket(bucketChunks)
		vectors := tx.Bucket(bucketVectors)
		for i, c := range snap.Chunks {
			key := itemKey(i)
			if err := chunks.Put(key, []byte(c.Text)); err != nil {
				return err
			}
			if err := vectors.Put(key, encodeVector(snap.Vectors[i])); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads a snapshot back from path, validating its structure. Any error
// here means the caller should rebuild from scratch rather than fail.
func Load(path string) (*Snapshot, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer db.Close()

	var snap *Snapshot
	err = db.View(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(bucketMeta)
		cb := tx.Bucket(bucketChunks)
		vb := tx.Bucket(bucketVectors)
		if mb == nil || cb == nil || vb == nil {
			return fmt.Errorf("snapshot: missing bucket")
		}

		var m meta
		if err := json.Unmarshal(mb.Get(keyMeta), &m); err != nil {
			return fmt.Errorf("snapshot: decode meta: %w", err)
		}
		if m.Count < 0 || m.Dimension <= 0 {
			return fmt.Errorf("snapshot: invalid meta: count=%d dim=%d", m.Count, m.Dimension)
		}

		s := &Snapshot{
			Chunks:      make([]index.Chunk, 0, m.Count),
			Vectors:     make([][]float32, 0, m.Count),
			Dimension:   m.Dimension,
			ModelInfo:   m.ModelInfo,
			Fingerprint: m.Fingerprint,
		}
		for i := 0; i < m.Count; i++ {
			key := itemKey(i)
			text := cb.Get(key)
			if text == nil {
				return fmt.Errorf("snapshot: missing chunk %d", i)
			}
			blob := vb.Get(key)
			vec, err := decodeVector(blob, m.Dimension)
			if err != nil {
				return fmt.Errorf("snapshot: vector %d: %w", i, err)
			}
			s.Chunks = append(s.Chunks, index.Chunk{ID: i, Text: string(text)})
			s.Vectors = append(s.Vectors, vec)
		}
		snap = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func itemKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

// encodeVector packs a vector as a little-endian float32 blob.
func encodeVector(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func decodeVector(b []byte, dim int) ([]float32, error) {
	if len(b) != dim*4 {
		return nil, fmt.Errorf("blob length %d, want %d", len(b), dim*4)
	}
	vec := make([]float32, dim)
	for i := 0; i < dim; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
