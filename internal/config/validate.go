package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDistribution(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDistribution() error {
	if c.Distribution.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/releasedesk/config.toml"
		}
		return fmt.Errorf("distribution.base_url is required. Edit %s (create with 'releasedesk config init')", defaultPath)
	}
	if err := validateURL("distribution.base_url", c.Distribution.BaseURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAssets() error {
	return validateURL("assets.base_url", c.Assets.BaseURL)
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New(field + " must use http or https")
	}
	if parsed.Host == "" {
		return errors.New(field + " must include a host")
	}
	return nil
}
