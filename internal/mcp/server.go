package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/config"
	"github.com/xlsforge/xlsforge/internal/docfile"
	"github.com/xlsforge/xlsforge/internal/survey"
	"github.com/xlsforge/xlsforge/internal/xlsform"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	docs      *docfile.Service
	logger    zerolog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docs *docfile.Service, logger zerolog.Logger) (*Server, error) {
	if docs == nil {
		return nil, fmt.Errorf("document service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		docs:      docs,
		logger:    logger,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseFileTool := mcp.NewTool(
		"questionnaire_parse_file",
		mcp.WithDescription("Parse a questionnaire document (.docx or .pdf) into structured survey units"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the document, relative to the configured document directory"),
		),
		mcp.WithString("strategy",
			mcp.Description("Extraction strategy: 'generic', 'likert', or 'auto' (uses the configured default if empty)"),
		),
	)
	s.mcpServer.AddTool(parseFileTool, s.handleParseFile)

	convertFileTool := mcp.NewTool(
		"questionnaire_convert_file",
		mcp.WithDescription("Convert a questionnaire document into an XLSForm workbook in the output directory"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the document, relative to the configured document directory"),
		),
		mcp.WithString("strategy",
			mcp.Description("Extraction strategy: 'generic', 'likert', or 'auto' (uses the configured default if empty)"),
		),
	)
	s.mcpServer.AddTool(convertFileTool, s.handleConvertFile)

	serverInfoTool := mcp.NewTool(
		"questionnaire_server_info",
		mcp.WithDescription("Get server information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	units, err := s.extractFile(request, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Parsed %s into %d survey unit(s)\n\n%s", path, len(units), payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleConvertFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	units, err := s.extractFile(request, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := xlsform.Build(units, xlsform.LayoutStandard)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := uuid.NewString() + "_surveyCTO.xlsx"
	outPath := filepath.Join(s.config.OutputDirectory, name)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s\n", path)
	responseText += fmt.Sprintf("Survey units: %d\n", len(units))
	responseText += fmt.Sprintf("Workbook: %s\n", outPath)
	responseText += fmt.Sprintf("Size: %d bytes\n", len(data))

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Document directory: %s\n", s.docs.Root())
	text += fmt.Sprintf("Output directory: %s\n", s.config.OutputDirectory)
	text += fmt.Sprintf("Default strategy: %s\n", s.config.Strategy)
	text += fmt.Sprintf("Max file size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	text += "Available Tools:\n"
	text += "\n• questionnaire_parse_file\n"
	text += "  Parses a .docx or .pdf questionnaire into the survey unit JSON array.\n"
	text += "  Parameters: path (required), strategy (optional)\n"
	text += "\n• questionnaire_convert_file\n"
	text += "  Parses a questionnaire and writes a two-sheet XLSForm workbook to the output directory.\n"
	text += "  Parameters: path (required), strategy (optional)\n"
	text += "\n• questionnaire_server_info\n"
	text += "  Prints this information.\n"

	return mcp.NewToolResultText(text), nil
}

// extractFile loads a document from the configured root and runs the
// requested extraction strategy over it.
func (s *Server) extractFile(request mcp.CallToolRequest, path string) ([]survey.Unit, error) {
	strategy := s.config.Strategy
	if v, ok := request.GetArguments()["strategy"].(string); ok && v != "" {
		strategy = v
	}

	extractor, err := survey.ForStrategy(strategy, s.logger)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return extractor.Extract(doc), nil
}

// Run starts the MCP server on standard I/O
func (s *Server) Run(_ context.Context) error {
	s.logger.Info().
		Str("docdir", s.docs.Root()).
		Str("outdir", s.config.OutputDirectory).
		Msg("starting MCP server in stdio mode")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
