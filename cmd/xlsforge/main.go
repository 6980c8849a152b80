package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/config"
	"github.com/xlsforge/xlsforge/internal/docfile"
	"github.com/xlsforge/xlsforge/internal/httpapi"
	"github.com/xlsforge/xlsforge/internal/mcp"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the root logger for the configured mode. Logs always
// go to stderr: in stdio mode stdout carries the MCP protocol, and in http
// mode stderr keeps logs separate from any piped output.
func setupLogging(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	if cfg.IsStdioMode() && !cfg.IsDebug() {
		// Keep stdio sessions quiet unless debugging is requested.
		logger = logger.Level(zerolog.WarnLevel)
	}
	return logger
}

// runHTTPMode serves the REST API until a shutdown signal arrives.
func runHTTPMode(ctx context.Context, cfg *config.Config, docs *docfile.Service, logger zerolog.Logger) error {
	store, err := httpapi.NewStore(cfg.OutputDirectory)
	if err != nil {
		return fmt.Errorf("failed to create artifact store: %w", err)
	}

	server := httpapi.NewServer(logger, docs, store, cfg.Address(), cfg.Strategy)
	return server.Start(ctx)
}

// runStdioMode serves MCP tools over standard I/O. The parent process
// controls our lifecycle, so we exit when stdin closes.
func runStdioMode(ctx context.Context, cfg *config.Config, docs *docfile.Service, logger zerolog.Logger) error {
	server, err := mcp.NewServer(cfg, docs, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Run(ctx)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		logger.Debug().Str("config", cfg.String()).Msg("starting with configuration")
	}

	docs, err := docfile.NewService(cfg.MaxFileSize, cfg.DocumentDirectory)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create document service")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	if cfg.IsHTTPMode() {
		err = runHTTPMode(ctx, cfg, docs, logger)
	} else {
		err = runStdioMode(ctx, cfg, docs, logger)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("xlsforge\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
