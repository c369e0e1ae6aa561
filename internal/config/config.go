package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Input controls how source tables are parsed.
type Input struct {
	Delimiter  string `toml:"delimiter"`
	Comment    string `toml:"comment"`
	LazyQuotes bool   `toml:"lazy_quotes"`
}

// Extract controls identifier recognition.
type Extract struct {
	// RequireZeroPrefix rejects 9-digit runs that do not begin with "00".
	RequireZeroPrefix bool `toml:"require_zero_prefix"`
	// Extensions restricts matches to cells ending in one of these
	// suffixes. Empty accepts every cell.
	Extensions []string `toml:"extensions"`
}

// Preview controls the table shown before the header question.
type Preview struct {
	Rows int `toml:"rows"`
}

// Prompt controls re-prompting.
type Prompt struct {
	// MaxAttempts bounds invalid answers per question; 0 is unlimited.
	MaxAttempts int `toml:"max_attempts"`
}

// Output controls which result sets are offered and how they are written.
type Output struct {
	Reports   []string `toml:"reports"`
	Print     bool     `toml:"print"`
	Trace     bool     `toml:"trace"`
	Header    bool     `toml:"header"`
	Delimiter string   `toml:"delimiter"`
}

// RejectLog controls the skipped-row log.
type RejectLog struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for sidmatch.
//
// Configuration sections:
//   - Input: delimiter and quoting of the two source files
//   - Extract: identifier strictness and filename extension filter
//   - Preview: rows shown before the header question
//   - Prompt: retry bound for invalid answers
//   - Output: offered reports and output file layout
//   - RejectLog: where skipped rows are recorded
//   - Logging: log format, level, and optional file
type Config struct {
	Input     Input     `toml:"input"`
	Extract   Extract   `toml:"extract"`
	Preview   Preview   `toml:"preview"`
	Prompt    Prompt    `toml:"prompt"`
	Output    Output    `toml:"output"`
	RejectLog RejectLog `toml:"reject_log"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// InputDelimiter returns the parsed input delimiter. Valid after Load.
func (c *Config) InputDelimiter() rune {
	r, _ := parseDelimiter(c.Input.Delimiter)
	return r
}

// OutputDelimiter returns the parsed output delimiter. Valid after Load.
func (c *Config) OutputDelimiter() rune {
	r, _ := parseDelimiter(c.Output.Delimiter)
	return r
}

// CommentRune returns the comment marker, or 0 when comments are disabled.
func (c *Config) CommentRune() rune {
	if c.Input.Comment == "" {
		return 0
	}
	r, _ := parseDelimiter(c.Input.Comment)
	return r
}
