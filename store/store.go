// Package store persists a watchlist as a JSON file.
//
// The file is a JSON array of records, indented with 2 spaces, in the exact
// layout the front end produces, so that rewriting an unchanged watchlist is
// a no-op for git.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/watchlist"
)

// File reads and writes watchlist files on the local disk.
// Its zero value is ready to use.
type File struct{}

var _ watchlist.Store = File{}

// Read loads the watchlist stored at path.
func (File) Read(path string) ([]watchlist.Stock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	stocks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON %q: %w", path, err)
	}
	return stocks, nil
}

// Write replaces the watchlist stored at path.
//
// The content is written to a temporary file in the same folder first, and
// then renamed over path.
func (File) Write(path string, stocks []watchlist.Stock) error {
	data, err := Encode(stocks)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	// the rename makes this a no-op on success.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// Decode parses a watchlist file content.
func Decode(data []byte) ([]watchlist.Stock, error) {
	var stocks []watchlist.Stock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// Encode formats a watchlist file content.
func Encode(stocks []watchlist.Stock) ([]byte, error) {
	if stocks == nil {
		stocks = []watchlist.Stock{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stocks); err != nil {
		return nil, err
	}
	// the front end writes no trailing newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
