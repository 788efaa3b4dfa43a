package config

const (
	defaultStateDir            = "~/.local/share/releasedesk"
	defaultLogDir              = "~/.local/share/releasedesk/logs"
	defaultDistributionTimeout = 30
	defaultAssetsTimeout       = 300
	defaultCoverMinPixels      = 3000
	defaultCoverMaxBytes       = 20 << 20
	defaultAudioMaxBytes       = 200 << 20
	defaultDocumentMaxBytes    = 10 << 20
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Distribution: Distribution{
			TimeoutSeconds: defaultDistributionTimeout,
		},
		Assets: Assets{
			TimeoutSeconds: defaultAssetsTimeout,
		},
		Uploads: Uploads{
			CoverMinPixels:   defaultCoverMinPixels,
			CoverMaxBytes:    defaultCoverMaxBytes,
			AudioMaxBytes:    defaultAudioMaxBytes,
			DocumentMaxBytes: defaultDocumentMaxBytes,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Drafts:         true,
			Steps:          false,
			Uploads:        false,
			Submissions:    true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
