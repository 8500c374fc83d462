package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestText_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := "The cat sat on the mat."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	text, err := Text(path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != content {
		t.Fatalf("expected %q, got %q", content, text)
	}
}

func TestText_MissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestText_InvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not really a pdf"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := Text(path)
	if !errors.Is(err, ErrExtract) {
		t.Fatalf("expected ErrExtract for invalid pdf, got %v", err)
	}
}
