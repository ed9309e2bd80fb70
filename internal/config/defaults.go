package config

const (
	defaultCatalogPath           = "~/catalog/models.json"
	defaultAssetsDir             = "~/catalog"
	defaultLogDir                = "~/.local/share/refscribe/logs"
	defaultWhisperBinary         = "whisper"
	defaultWhisperModel          = "medium"
	defaultWhisperTimeoutSeconds = 600
	defaultPauseMilliseconds     = 500
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath: defaultCatalogPath,
			AssetsDir:   defaultAssetsDir,
			LogDir:      defaultLogDir,
		},
		Whisper: Whisper{
			Binary:         defaultWhisperBinary,
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeoutSeconds,
		},
		Workflow: Workflow{
			PauseMilliseconds: defaultPauseMilliseconds,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
