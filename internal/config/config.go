// Package config handles application configuration and command-line argument parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
)

// Default values applied before flag parsing.
const (
	DefaultLogDir       = "logs"
	DefaultDefaultsFile = "default.txt"
	DefaultThresholdSec = 10
	DefaultWorkers      = 1
	DefaultMaxPath      = 4084
)

// Config holds the application configuration.
type Config struct {
	SourcePath      string `arg:"-s,--source" help:"Source directory path or sftp:// endpoint"`
	DestPath        string `arg:"-d,--dest" help:"Destination directory path or sftp:// endpoint"`
	LogDir          string `arg:"--log-dir" default:"logs" help:"Directory for per-run log files"`
	DefaultsFile    string `arg:"--defaults" default:"default.txt" help:"File holding default 'source,destination' paths"`
	Pattern         string `arg:"-p,--pattern" help:"Glob limiting which files are examined (e.g. '*.jpg')"`
	ThresholdSec    int    `arg:"--threshold" default:"10" help:"Copy when timestamps differ by more than this many seconds"`
	Workers         int    `arg:"-w,--workers" default:"1" help:"Walk top-level subfolders concurrently when > 1"`
	MaxPath         int    `arg:"--max-path" default:"4084" help:"Maximum path length in bytes"`
	InteractiveMode bool   `arg:"-i,--interactive" help:"Prompt for paths in the terminal UI"`
}

// Threshold returns the copy threshold as a duration.
func (cfg *Config) Threshold() time.Duration {
	return time.Duration(cfg.ThresholdSec) * time.Second
}

// Description returns the program description for go-arg.
func (Config) Description() string {
	return "Mirror a directory tree into a backup destination, copying only files whose timestamps changed"
}

// Version returns the version string for go-arg.
func (Config) Version() string {
	return "backup-files 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags() (*Config, error) {
	cfg := &Config{
		LogDir:       DefaultLogDir,
		DefaultsFile: DefaultDefaultsFile,
		ThresholdSec: DefaultThresholdSec,
		Workers:      DefaultWorkers,
		MaxPath:      DefaultMaxPath,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig resolves paths left unset by flags: first from the
// defaults file, then by falling back to interactive mode.
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.SourcePath == "" && cfg.DestPath == "" {
		if source, dest, err := LoadDefaultPaths(cfg.DefaultsFile); err == nil {
			cfg.SourcePath = source
			cfg.DestPath = dest
		} else {
			cfg.InteractiveMode = true
		}
	}

	if !cfg.InteractiveMode {
		if err := cfg.ValidatePaths(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadDefaultPaths reads a defaults file holding a single
// "source,destination" line.
func LoadDefaultPaths(path string) (source, dest string, err error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}

	line := strings.TrimRight(string(contents), "\r\n")

	source, dest, found := strings.Cut(line, ",")
	if !found || source == "" || dest == "" {
		return "", "", fmt.Errorf("defaults file %s must hold one 'source,destination' line", path)
	}

	return strings.TrimSpace(source), strings.TrimSpace(dest), nil
}

// ValidatePaths validates that source and destination paths are usable.
// Remote endpoints are only checked for presence here; they are
// validated when the connection is made.
func (cfg *Config) ValidatePaths() error {
	if cfg.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}

	if cfg.DestPath == "" {
		return fmt.Errorf("destination path is required")
	}

	if err := validateLocalDir("source", cfg.SourcePath); err != nil {
		return err
	}

	return validateLocalDir("destination", cfg.DestPath)
}

// validateLocalDir checks that a local path exists and is a directory.
// sftp:// endpoints pass through.
func validateLocalDir(role, path string) error {
	if strings.HasPrefix(path, "sftp://") {
		return nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s path does not exist: %s", role, path)
	}

	if err != nil {
		return fmt.Errorf("cannot access %s path: %w", role, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s path is not a directory: %s", role, path)
	}

	return nil
}
