package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xlsforge/xlsforge/internal/survey"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeHTTP  = "http"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultStrategy    = survey.StrategyGeneric
	DefaultMaxFileSize = 32 * 1024 * 1024 // 32MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the questionnaire conversion server
type Config struct {
	// Server configuration
	Mode string // "http" or "stdio"
	Host string
	Port int

	// Conversion configuration
	DocumentDirectory string
	OutputDirectory   string
	Strategy          string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum input document size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeHTTP,
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		OutputDirectory:   filepath.Join(currentDir, "output"),
		Strategy:          DefaultStrategy,
		Version:           "1.0.0",
		ServerName:        "xlsforge",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("XLSFORGE")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("docdir", cfg.DocumentDirectory)
	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("strategy", cfg.Strategy)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'http' for the REST API, 'stdio' for MCP standard I/O")
	pflag.String("host", cfg.Host, "Server host address (http mode only)")
	pflag.Int("port", cfg.Port, "Server port (http mode only)")
	pflag.String("docdir", cfg.DocumentDirectory, "Directory containing questionnaire documents (stdio mode)")
	pflag.String("outdir", cfg.OutputDirectory, "Directory for generated JSON and workbook artifacts")
	pflag.String("strategy", cfg.Strategy, "Extraction strategy: 'generic', 'likert', or 'auto'")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input document size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("docdir", pflag.Lookup("docdir"))
	_ = viper.BindPFlag("outdir", pflag.Lookup("outdir"))
	_ = viper.BindPFlag("strategy", pflag.Lookup("strategy"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nxlsforge - converts questionnaire documents to XLSForm workbooks\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          # HTTP API on 127.0.0.1:8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --host=0.0.0.0 --port=9090               # HTTP API on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --docdir=/path/to/docs      # MCP stdio mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --strategy=likert                        # scale-battery extraction\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_DOCDIR      Document directory\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_OUTDIR      Output directory\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_STRATEGY    Extraction strategy\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  XLSFORGE_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("docdir")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.Strategy = viper.GetString("strategy")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeHTTP {
		return errors.New("mode must be either 'stdio' or 'http'")
	}

	if c.Mode == ModeHTTP && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}
	if err := ensureDirectory(c.DocumentDirectory); err != nil {
		return err
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}
	if err := ensureDirectory(c.OutputDirectory); err != nil {
		return err
	}

	switch c.Strategy {
	case survey.StrategyGeneric, survey.StrategyLikert, survey.StrategyAuto:
	default:
		return fmt.Errorf("invalid strategy: %s (must be one of: generic, likert, auto)", c.Strategy)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func ensureDirectory(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, OutputDirectory: %s, "+
		"Strategy: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.OutputDirectory, c.Strategy, c.LogLevel, c.MaxFileSize)
}

// IsHTTPMode returns true if the server is running the REST API
func (c *Config) IsHTTPMode() bool {
	return c.Mode == ModeHTTP
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
