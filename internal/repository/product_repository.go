package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrFileNotFound    = errors.New("products file not found")
	ErrInvalidJSON     = errors.New("products file is not valid JSON")
	ErrInvalidDataType = errors.New("products file does not hold an object or array")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Load returns the catalog document exactly as stored
	Load(ctx context.Context) (json.RawMessage, error)
}

// FileProductRepository reads the catalog from a JSON file on every call
type FileProductRepository struct {
	path string
}

// NewFileProductRepository creates a repository backed by the file at path
func NewFileProductRepository(path string) *FileProductRepository {
	return &FileProductRepository{
		path: path,
	}
}

// Path returns the catalog file location
func (r *FileProductRepository) Path() string {
	return r.path
}

// Load reads and checks the catalog file.
// Parse failures wrap ErrInvalidJSON and keep the decoder's message for logging.
func (r *FileProductRepository) Load(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read products file %s: %w", r.path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch doc.(type) {
	case map[string]any, []any:
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidDataType, doc)
	}

	return json.RawMessage(bytes.TrimSpace(data)), nil
}
