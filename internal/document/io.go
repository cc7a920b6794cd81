package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Read reads all of r into a new document. CRLF line endings become '\n'.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return FromText(normalizeNewlines(string(data))), nil
}

// Load reads the file at path into a new document.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only document.
			_ = cerr
		}
	}()
	return Read(file)
}

// Save writes the document text to path, replacing the file atomically.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create document dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".readstat-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(d.Text()); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
