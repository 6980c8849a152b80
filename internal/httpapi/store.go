package httpapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrArtifactNotFound is returned when a download names an artifact that
// was never generated or has been removed.
var ErrArtifactNotFound = errors.New("artifact not found")

// Store keeps generated JSON and workbook artifacts on disk under a single
// output directory. Filenames are prefixed with a random id so concurrent
// conversions never collide.
type Store struct {
	dir string
}

// NewStore creates the output directory if needed.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Save writes data under a fresh unique filename ending in suffix and
// returns that filename.
func (s *Store) Save(suffix string, data []byte) (string, error) {
	name := uuid.NewString() + "_" + suffix
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return name, nil
}

// Path resolves an artifact filename to its on-disk path. Names carrying
// path separators or traversal segments are rejected as not found.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", ErrArtifactNotFound
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrArtifactNotFound
	}
	return path, nil
}
