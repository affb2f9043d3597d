package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultCataloguePath = "livres.csv"
	DefaultHistoryPath   = "emprunts.txt"
	DefaultLogLevel      = "warn"

	EnvCatalogue = "LIBRARY_CATALOGUE"
	EnvHistory   = "LIBRARY_HISTORY"
	EnvLogLevel  = "LIBRARY_LOG_LEVEL"

	defaultEnvFile = ".env"
)

// Config holds the file locations used by one session.
type Config struct {
	CataloguePath string
	HistoryPath   string
	LogLevel      string
}

func DefaultConfig() Config {
	return Config{
		CataloguePath: DefaultCataloguePath,
		HistoryPath:   DefaultHistoryPath,
		LogLevel:      DefaultLogLevel,
	}
}

// LoadConfig starts from DefaultConfig and applies the environment. Variables
// from envFile are loaded first without overriding the real environment.
// With an empty envFile, ./.env is used when present.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", defaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv(EnvCatalogue)); v != "" {
		cfg.CataloguePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistory)); v != "" {
		cfg.HistoryPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
