package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DefaultDataDir is where class files are looked up when no flag or
	// environment override is given
	DefaultDataDir = "memorize_files"

	// DefaultRounds is the fallback number of rounds per game
	DefaultRounds = 10
)

// Config holds all application configuration
type Config struct {
	// DataDir is the directory containing vocabulary data files
	DataDir string

	// LogPath is the debug log file. Logging is disabled when empty; the
	// TUI owns the terminal, so the log never goes to stdout or stderr.
	LogPath string

	// Rounds is the default number of rounds per game
	Rounds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		DataDir: getEnv("MEMORIZE_DATA_DIR", DefaultDataDir),
		LogPath: os.Getenv("MEMORIZE_LOG"),
		Rounds:  DefaultRounds,
	}

	if v := os.Getenv("MEMORIZE_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MEMORIZE_ROUNDS must be a positive integer, got %q", v)
		}
		cfg.Rounds = n
	}

	return cfg, nil
}

// NewLogger builds the application logger. With no log path configured it
// returns a nop logger.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.LogPath == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{c.LogPath}
	zcfg.ErrorOutputPaths = []string{c.LogPath}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
