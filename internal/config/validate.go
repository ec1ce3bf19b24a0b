package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must include at least one extension")
	}
	for _, ext := range c.Scan.Extensions {
		if ext == "." || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("scan.extensions contains invalid entry %q", ext)
		}
	}
	for _, dir := range c.Scan.ExcludeDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("scan.exclude_dirs entries must be directory names, got %q", dir)
		}
	}
	if c.Scan.YearMin >= c.Scan.YearMax {
		return errors.New("scan.year_min must be less than scan.year_max")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Logging.File && strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set when logging.file is true")
	}
	return nil
}
