package docfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service handles document loading with size and path constraints. File
// reads are scoped to a configured root directory so path-addressed modes
// (MCP tools) cannot reach outside it.
type Service struct {
	maxFileSize int64
	root        string
}

// NewService creates a document service rooted at the given directory.
func NewService(maxFileSize int64, root string) (*Service, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve document directory %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &Service{maxFileSize: maxFileSize, root: abs}, nil
}

// Root returns the configured document root directory.
func (s *Service) Root() string {
	return s.root
}

// Decode decodes in-memory document bytes, dispatching on the file
// extension of the supplied name.
func (s *Service) Decode(filename string, content []byte) (*Document, error) {
	if s.maxFileSize > 0 && int64(len(content)) > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			len(content), s.maxFileSize)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return ReadDocx(content)
	case ".pdf":
		return ReadPDF(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadFile validates that path resolves inside the configured root, then
// loads and decodes the file.
func (s *Service) ReadFile(path string) (*Document, error) {
	resolved, err := s.validatePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedDocument)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			info.Size(), s.maxFileSize)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return s.Decode(resolved, content)
}

// validatePath resolves path relative to the root and rejects anything that
// escapes it.
func (s *Service) validatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the configured document directory", path)
	}
	return abs, nil
}
