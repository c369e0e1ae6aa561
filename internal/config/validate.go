package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	if err := c.validatePrompt(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInput() error {
	delim, err := parseDelimiter(c.Input.Delimiter)
	if err != nil {
		return fmt.Errorf("input.delimiter: %w", err)
	}
	if c.Input.Comment != "" {
		comment, err := parseDelimiter(c.Input.Comment)
		if err != nil {
			return fmt.Errorf("input.comment: %w", err)
		}
		if comment == delim {
			return errors.New("input.comment must differ from input.delimiter")
		}
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.Rows < 0 || c.Preview.Rows > maxPreviewRows {
		return fmt.Errorf("preview.rows must be between 0 and %d", maxPreviewRows)
	}
	return nil
}

func (c *Config) validatePrompt() error {
	if c.Prompt.MaxAttempts < 0 {
		return errors.New("prompt.max_attempts must not be negative (0 means unlimited)")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, err := parseDelimiter(c.Output.Delimiter); err != nil {
		return fmt.Errorf("output.delimiter: %w", err)
	}
	if len(c.Output.Reports) == 0 {
		return errors.New("output.reports must list at least one report")
	}
	for _, report := range c.Output.Reports {
		switch report {
		case reportOnlyFirst, reportOnlySecond, reportCommon, reportUnion:
		default:
			return fmt.Errorf("output.reports: unknown report %q (want only_first, only_second, common, or union)", report)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// parseDelimiter accepts a single rune that encoding/csv can split on.
func parseDelimiter(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("must be a single character, got %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	switch r {
	case utf8.RuneError, '"', '\r', '\n', 0xFEFF:
		return 0, fmt.Errorf("%q cannot be used as a separator", value)
	}
	return r, nil
}
