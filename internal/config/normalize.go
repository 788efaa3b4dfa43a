package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDistribution()
	c.normalizeAssets()
	c.normalizeUploads()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDistribution() {
	c.Distribution.BaseURL = strings.TrimRight(strings.TrimSpace(c.Distribution.BaseURL), "/")
	c.Distribution.APIToken = strings.TrimSpace(c.Distribution.APIToken)
	if c.Distribution.TimeoutSeconds <= 0 {
		c.Distribution.TimeoutSeconds = defaultDistributionTimeout
	}
}

func (c *Config) normalizeAssets() {
	c.Assets.BaseURL = strings.TrimRight(strings.TrimSpace(c.Assets.BaseURL), "/")
	c.Assets.APIToken = strings.TrimSpace(c.Assets.APIToken)
	if c.Assets.BaseURL == "" {
		c.Assets.BaseURL = c.Distribution.BaseURL
	}
	if c.Assets.APIToken == "" {
		c.Assets.APIToken = c.Distribution.APIToken
	}
	if c.Assets.TimeoutSeconds <= 0 {
		c.Assets.TimeoutSeconds = defaultAssetsTimeout
	}
}

func (c *Config) normalizeUploads() {
	if c.Uploads.CoverMinPixels <= 0 {
		c.Uploads.CoverMinPixels = defaultCoverMinPixels
	}
	if c.Uploads.CoverMaxBytes <= 0 {
		c.Uploads.CoverMaxBytes = defaultCoverMaxBytes
	}
	if c.Uploads.AudioMaxBytes <= 0 {
		c.Uploads.AudioMaxBytes = defaultAudioMaxBytes
	}
	if c.Uploads.DocumentMaxBytes <= 0 {
		c.Uploads.DocumentMaxBytes = defaultDocumentMaxBytes
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
