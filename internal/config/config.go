// Package config resolves defaults from the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/thiagokokada/git-lastseen/internal/git"
)

const (
	EnvRepo     = "GIT_LASTSEEN_REPO"
	EnvBranch   = "GIT_LASTSEEN_BRANCH"
	EnvLogLevel = "LOG_LEVEL"

	DefaultRepo   = ".."
	DefaultBranch = git.DefaultBranch
)

type Config struct {
	Repo     string
	Branch   string
	LogLevel slog.Level
}

// Load reads envFiles (".env" when none are given) into the process
// environment, without overriding variables already set, and builds a
// Config. Missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("env file not found", slog.String("path", name))
				continue
			}
			return nil, err
		}
		slog.Debug("env file loaded", slog.String("path", name))
	}
	return &Config{
		Repo:     getEnv(EnvRepo, DefaultRepo),
		Branch:   getEnv(EnvBranch, DefaultBranch),
		LogLevel: parseLevel(os.Getenv(EnvLogLevel)),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
