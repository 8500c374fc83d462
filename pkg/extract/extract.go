package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotFound is returned when the document path does not exist.
var ErrNotFound = errors.New("extract: document not found")

// ErrExtract wraps failures to pull text out of an existing document.
var ErrExtract = errors.New("extract: extraction failed")

// Text returns the full text of the document at path as a single string.
// PDF files go through the pdf reader; everything else is read as plain
// text.
func Text(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: stat %s: %v", ErrExtract, path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdfText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrExtract, path, err)
	}
	return string(data), nil
}

func pdfText(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf %s: %v", ErrExtract, path, err)
	}
	defer f.Close()

	r, err := rdr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read pdf text: %v", ErrExtract, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("%w: read pdf buffer: %v", ErrExtract, err)
	}
	return buf.String(), nil
}
