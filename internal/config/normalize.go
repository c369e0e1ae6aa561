package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeInput()
	c.normalizeExtract()
	c.normalizeOutput()
	if err := c.normalizeRejectLog(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeInput() {
	c.Input.Delimiter = normalizeDelimiter(c.Input.Delimiter)
	if c.Input.Comment != "" {
		c.Input.Comment = normalizeDelimiter(c.Input.Comment)
	}
}

func (c *Config) normalizeExtract() {
	if len(c.Extract.Extensions) == 0 {
		c.Extract.Extensions = nil
		return
	}
	exts := make([]string, 0, len(c.Extract.Extensions))
	seen := make(map[string]struct{}, len(c.Extract.Extensions))
	for _, ext := range c.Extract.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Extract.Extensions = exts
}

func (c *Config) normalizeOutput() {
	c.Output.Delimiter = normalizeDelimiter(c.Output.Delimiter)
	reports := make([]string, 0, len(c.Output.Reports))
	seen := make(map[string]struct{}, len(c.Output.Reports))
	for _, report := range c.Output.Reports {
		normalized := strings.ToLower(strings.TrimSpace(report))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		reports = append(reports, normalized)
	}
	c.Output.Reports = reports
}

func (c *Config) normalizeRejectLog() error {
	c.RejectLog.Path = strings.TrimSpace(c.RejectLog.Path)
	if c.RejectLog.Path == "" {
		c.RejectLog.Path = defaultRejectLogPath
	}
	var err error
	if c.RejectLog.Path, err = expandPath(c.RejectLog.Path); err != nil {
		return fmt.Errorf("reject_log.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv(logLevelEnv); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

// normalizeDelimiter maps the spellings people use in TOML onto a single
// character. An empty value becomes the default comma.
func normalizeDelimiter(value string) string {
	switch strings.ToLower(value) {
	case "":
		return defaultDelimiter
	case `\t`, "tab":
		return "\t"
	case "comma":
		return ","
	case "semicolon":
		return ";"
	case "pipe":
		return "|"
	}
	return value
}
