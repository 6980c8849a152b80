package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/config"
	"github.com/xlsforge/xlsforge/internal/docfile"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Mode:              "stdio",
		DocumentDirectory: t.TempDir(),
		OutputDirectory:   t.TempDir(),
		Strategy:          "generic",
		ServerName:        "test-server",
		Version:           "1.0.0",
		MaxFileSize:       1024 * 1024,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig(t)
	docs, err := docfile.NewService(cfg.MaxFileSize, cfg.DocumentDirectory)
	if err != nil {
		t.Fatalf("failed to create document service: %v", err)
	}
	s, err := NewServer(cfg, docs, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return s
}

// extractTextFromResult extracts text content from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	var parts []string
	for _, content := range result.Content {
		switch c := content.(type) {
		case mcp.TextContent:
			parts = append(parts, c.Text)
		case *mcp.TextContent:
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	docs, err := docfile.NewService(cfg.MaxFileSize, cfg.DocumentDirectory)
	if err != nil {
		t.Fatalf("failed to create document service: %v", err)
	}

	tests := []struct {
		name    string
		config  *config.Config
		docs    *docfile.Service
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  cfg,
			docs:    docs,
			wantErr: false,
		},
		{
			name:    "nil document service",
			config:  cfg,
			docs:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.config, tt.docs, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewServer() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && s == nil {
				t.Error("NewServer() returned nil server without error")
			}
		})
	}
}

func TestHandleParseFile(t *testing.T) {
	s := newTestServer(t)

	unsupported := filepath.Join(s.docs.Root(), "notes.txt")
	if err := os.WriteFile(unsupported, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name        string
		arguments   map[string]interface{}
		wantErrText string
	}{
		{
			name:        "missing path argument",
			arguments:   map[string]interface{}{},
			wantErrText: "path",
		},
		{
			name:        "nonexistent file",
			arguments:   map[string]interface{}{"path": "missing.docx"},
			wantErrText: "does not exist",
		},
		{
			name:        "path outside document directory",
			arguments:   map[string]interface{}{"path": "../escape.docx"},
			wantErrText: "outside",
		},
		{
			name:        "unsupported file format",
			arguments:   map[string]interface{}{"path": "notes.txt"},
			wantErrText: "unsupported",
		},
		{
			name: "unknown strategy",
			arguments: map[string]interface{}{
				"path":     "missing.docx",
				"strategy": "fancy",
			},
			wantErrText: "strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Arguments: tt.arguments,
				},
			}

			result, err := s.handleParseFile(context.Background(), request)
			if err != nil {
				t.Fatalf("handleParseFile() returned transport error: %v", err)
			}
			if result == nil {
				t.Fatal("handleParseFile() returned nil result")
			}
			if !result.IsError {
				t.Fatal("handleParseFile() expected error result")
			}
			text := extractTextFromResult(result)
			if !strings.Contains(strings.ToLower(text), tt.wantErrText) {
				t.Errorf("error text %q does not mention %q", text, tt.wantErrText)
			}
		})
	}
}

func TestHandleConvertFile(t *testing.T) {
	s := newTestServer(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{"path": "missing.docx"},
		},
	}

	result, err := s.handleConvertFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handleConvertFile() returned transport error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("handleConvertFile() expected error result for missing file")
	}
	if text := extractTextFromResult(result); !strings.Contains(text, "does not exist") {
		t.Errorf("error text %q does not mention missing file", text)
	}

	// No workbook should be written on the failure path.
	entries, err := os.ReadDir(s.config.OutputDirectory)
	if err != nil {
		t.Fatalf("failed to read output directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output directory has %d entries, want 0", len(entries))
	}
}

func TestHandleServerInfo(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleServerInfo(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleServerInfo() returned transport error: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatal("handleServerInfo() expected success result")
	}

	text := extractTextFromResult(result)
	wantStrings := []string{
		"test-server v1.0.0",
		"questionnaire_parse_file",
		"questionnaire_convert_file",
		"questionnaire_server_info",
		s.docs.Root(),
		s.config.OutputDirectory,
	}
	for _, want := range wantStrings {
		if !strings.Contains(text, want) {
			t.Errorf("server info missing %q", want)
		}
	}
}
